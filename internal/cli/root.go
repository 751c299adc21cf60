// Package cli implements the chronicle command line. Without a subcommand
// it opens the TUI on a terminal and prints the collection otherwise.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mmcdole/chronicle/internal/catalog"
	"github.com/mmcdole/chronicle/internal/config"
	"github.com/mmcdole/chronicle/internal/log"
	"github.com/mmcdole/chronicle/internal/query"
	"github.com/mmcdole/chronicle/internal/store"
	"github.com/mmcdole/chronicle/internal/transfer"
	"github.com/mmcdole/chronicle/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// globalFlags are shared by every command
type globalFlags struct {
	configFile string
	dataDir    string
	ephemeral  bool
}

// App holds the services a command runs against. It is opened by the
// root's pre-run hook and closed once the command returns.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      *store.LibraryStore
	collection *catalog.Collection
	queries    *catalog.Queries
	transfer   *transfer.Service
}

// Execute runs the command line with args and returns the first error
func Execute(version string, args []string, in io.Reader, out, errOut io.Writer) error {
	app := &App{}
	defer app.close()

	root := newRootCmd(app, version)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.Execute()
}

func newRootCmd(app *App, version string) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "chronicle",
		Short: "Track the anime and manhwa you watch and read",
		Long: `Chronicle keeps a local collection of anime and manhwa with ratings,
genres and a watchlist. Run it without arguments for the full-screen browser.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open(flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if isTerminal(cmd.OutOrStdout()) {
				return app.runTUI()
			}
			return printItems(cmd.OutOrStdout(), query.Apply(app.queries.All(), query.Criteria{}, app.defaultSort()))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default ~/.config/chronicle/config.yaml)")
	pf.StringVar(&flags.dataDir, "data-dir", "", "directory holding the collection database")
	pf.BoolVar(&flags.ephemeral, "ephemeral", false, "keep the collection in memory only")

	root.AddCommand(
		newAddCmd(app),
		newEditCmd(app),
		newRemoveCmd(app),
		newShowCmd(app),
		newListCmd(app),
		newSearchCmd(app),
		newFilterCmd(app),
		newWatchlistCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newClearCmd(app),
		newVersionCmd(version),
	)
	return root
}

// open loads config, logging and the collection
func (a *App) open(flags *globalFlags) error {
	cfg, err := config.LoadConfig(flags.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if flags.dataDir != "" {
		if cfg.Storage.Dir, err = config.ExpandHome(flags.dataDir); err != nil {
			return err
		}
	}
	if flags.ephemeral {
		cfg.Storage.Dir = ""
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}

	st, err := store.NewLibraryStore(cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("failed to open collection: %w", err)
	}

	collection := catalog.NewCollection(st, logger)
	if err := collection.Load(); err != nil {
		st.Close()
		return fmt.Errorf("failed to load collection: %w", err)
	}

	appName := cfg.Export.AppName
	if appName == "" {
		appName = config.AppName
	}

	a.cfg = cfg
	a.logger = logger
	a.store = st
	a.collection = collection
	a.queries = catalog.NewQueries(collection)
	a.transfer = transfer.NewService(collection, appName, logger)

	logger.Debug("opened collection", "path", st.Path(), "count", a.queries.Count())
	return nil
}

func (a *App) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// defaultSort reads the configured sort, falling back to title ascending
func (a *App) defaultSort() query.Sort {
	var s query.Sort
	if key, err := query.ParseSortKey(a.cfg.UI.DefaultSort); err == nil {
		s.Key = key
	}
	if order, err := query.ParseSortOrder(a.cfg.UI.DefaultOrder); err == nil {
		s.Order = order
	}
	return s
}

func (a *App) runTUI() error {
	a.logger.Info("starting TUI")
	err := tui.Run(tui.Options{
		Collection:    a.collection,
		Transfer:      a.transfer,
		Prefs:         a.store,
		Sort:          a.defaultSort(),
		ShowInspector: a.cfg.UI.ShowInspector,
		ExportDir:     a.cfg.Export.Dir,
		Logger:        a.logger,
	})
	if err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	a.logger.Info("shutting down")
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// No collection needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "chronicle %s\n", version)
			return nil
		},
	}
}
