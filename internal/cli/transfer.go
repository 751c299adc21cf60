package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Append the rows of a CSV backup to the collection",
		Long: `Reads a CSV file with a header row (title, type, genres, description,
rating, status, inWatchlist, watchlistStatus, imageUrl) and appends every
row as a new item. Missing columns take their defaults.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			added, err := app.transfer.ImportFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s from %s\n", added, plural(added, "item", "items"), args[0])
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the collection to a dated CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("dir") {
				dir = app.cfg.Export.Dir
			}
			count := app.queries.Count()
			path, err := app.transfer.ExportFile(dir, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s to %s\n", count, plural(count, "item", "items"), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory to write into (default from config)")
	return cmd
}

func newClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every item in the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count := app.queries.Count()
			if count == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Collection is already empty")
				return nil
			}

			if !yes {
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
					fmt.Sprintf("Delete all %d %s?", count, plural(count, "item", "items")))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			if err := app.collection.ClearAll(); err != nil {
				return fmt.Errorf("failed to save collection: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d %s\n", count, plural(count, "item", "items"))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
