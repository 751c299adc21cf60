package cli

import (
	"fmt"

	"github.com/mmcdole/chronicle/internal/domain"
	"github.com/mmcdole/chronicle/internal/query"
	"github.com/spf13/cobra"
)

func newWatchlistCmd(app *App) *cobra.Command {
	list := func(cmd *cobra.Command, args []string) error {
		on := true
		c := query.Criteria{Watchlist: &on}
		if len(args) == 1 {
			status, err := parseWatchlistStatus(args[0])
			if err != nil {
				return err
			}
			c.WatchlistStatus = &status
		}
		return listItems(cmd.OutOrStdout(), app, c, app.defaultSort())
	}

	cmd := &cobra.Command{
		Use:     "watchlist [status]",
		Aliases: []string{"wl"},
		Short:   "Show and manage the watchlist",
		Args:    cobra.MaximumNArgs(1),
		RunE:    list,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list [status]",
			Short: "List watchlist items, optionally with one status",
			Args:  cobra.MaximumNArgs(1),
			RunE:  list,
		},
		&cobra.Command{
			Use:   "toggle <id>",
			Short: "Add an item to the watchlist, or take it off",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return watchlistChange(cmd, app, args[0], func(item domain.MediaItem) (bool, error) {
					return app.collection.ToggleWatchlist(item.ID)
				})
			},
		},
		&cobra.Command{
			Use:   "set <id> <status>",
			Short: "Set the watchlist status (Planning, Current, Completed, Dropped)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				status, err := parseWatchlistStatus(args[1])
				if err != nil {
					return err
				}
				return watchlistChange(cmd, app, args[0], func(item domain.MediaItem) (bool, error) {
					return app.collection.SetWatchlistStatus(item.ID, status)
				})
			},
		},
		&cobra.Command{
			Use:     "remove <id>",
			Aliases: []string{"rm"},
			Short:   "Take an item off the watchlist",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return watchlistChange(cmd, app, args[0], func(item domain.MediaItem) (bool, error) {
					return app.collection.RemoveFromWatchlist(item.ID)
				})
			},
		},
	)
	return cmd
}

// watchlistChange applies fn to the referenced item and prints its new state
func watchlistChange(cmd *cobra.Command, app *App, ref string, fn func(domain.MediaItem) (bool, error)) error {
	item, err := app.queries.Resolve(ref)
	if err != nil {
		return err
	}

	found, err := fn(item)
	if err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	if !found {
		return domain.ErrItemNotFound
	}

	updated, err := app.queries.Get(item.ID)
	if err != nil {
		return err
	}
	if updated.InWatchlist {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", updated.Title, updated.WatchlistLabel())
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: not on watchlist\n", updated.Title)
	}
	return nil
}
