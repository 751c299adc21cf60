package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/chronicle/internal/domain"
	"github.com/mmcdole/chronicle/internal/query"
	"github.com/spf13/cobra"
)

// sortFlags select the ordering of a listing
type sortFlags struct {
	key   string
	order string
}

func (f *sortFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.key, "sort", "", "sort by title, rating or status (default from config)")
	cmd.Flags().StringVar(&f.order, "order", "", "asc or desc (default from config)")
}

func (f *sortFlags) sort(app *App) (query.Sort, error) {
	s := app.defaultSort()
	if f.key != "" {
		key, err := query.ParseSortKey(f.key)
		if err != nil {
			return s, err
		}
		s.Key = key
		// A new key starts in its natural direction
		s.Order = query.Ascending
		if key == query.SortRating {
			s.Order = query.Descending
		}
	}
	if f.order != "" {
		order, err := query.ParseSortOrder(f.order)
		if err != nil {
			return s, err
		}
		s.Order = order
	}
	return s, nil
}

// parseNames maps user-typed names onto an option table
func parseNames[T ~string](kind string, names []string, lookup func(string) (T, bool)) ([]T, error) {
	var out []T
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		v, ok := lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown %s %q", kind, name)
		}
		out = append(out, v)
	}
	return out, nil
}

func newListCmd(app *App) *cobra.Command {
	var (
		sf                      sortFlags
		search                  string
		itemType, status, genre string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the collection",
		Example: `  chronicle list --sort rating
  chronicle list --search naruto --type Anime`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sf.sort(app)
			if err != nil {
				return err
			}

			c := query.Criteria{Search: strings.TrimSpace(search)}
			if c.Types, err = parseNames("type", []string{itemType}, domain.LookupMediaType); err != nil {
				return err
			}
			if c.Statuses, err = parseNames("status", []string{status}, domain.LookupStatus); err != nil {
				return err
			}
			if c.Genres, err = parseNames("genre", []string{genre}, domain.LookupGenre); err != nil {
				return err
			}

			return listItems(cmd.OutOrStdout(), app, c, s)
		},
	}

	sf.bind(cmd)
	cmd.Flags().StringVarP(&search, "search", "q", "", "only titles containing this text")
	cmd.Flags().StringVar(&itemType, "type", "", "only this type")
	cmd.Flags().StringVarP(&status, "status", "s", "", "only this status")
	cmd.Flags().StringVarP(&genre, "genre", "g", "", "only this genre")
	return cmd
}

func newSearchCmd(app *App) *cobra.Command {
	var sf sortFlags

	cmd := &cobra.Command{
		Use:   "search <text>...",
		Short: "Search titles, descriptions and genres",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sf.sort(app)
			if err != nil {
				return err
			}
			c := query.Criteria{
				Search:   strings.TrimSpace(strings.Join(args, " ")),
				FullText: true,
			}
			return listItems(cmd.OutOrStdout(), app, c, s)
		},
	}
	sf.bind(cmd)
	return cmd
}

func newFilterCmd(app *App) *cobra.Command {
	var (
		sf                      sortFlags
		types, statuses, genres []string
		minRating, maxRating    float64
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List items matching several types, statuses, genres and a rating range",
		Long: `Types and statuses match any of the given values. Genres match items
carrying at least one of the given genres. Rating bounds are inclusive.`,
		Example: `  chronicle filter --type Anime --genre Action --genre Fantasy --min-rating 8`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sf.sort(app)
			if err != nil {
				return err
			}

			var c query.Criteria
			if c.Types, err = parseNames("type", types, domain.LookupMediaType); err != nil {
				return err
			}
			if c.Statuses, err = parseNames("status", statuses, domain.LookupStatus); err != nil {
				return err
			}
			if c.Genres, err = parseNames("genre", genres, domain.LookupGenre); err != nil {
				return err
			}

			if cmd.Flags().Changed("min-rating") {
				c.MinRating = &minRating
			}
			if cmd.Flags().Changed("max-rating") {
				c.MaxRating = &maxRating
			}
			if c.MinRating != nil && c.MaxRating != nil && *c.MinRating > *c.MaxRating {
				return fmt.Errorf("--min-rating %g is above --max-rating %g", *c.MinRating, *c.MaxRating)
			}

			return listItems(cmd.OutOrStdout(), app, c, s)
		},
	}

	sf.bind(cmd)
	cmd.Flags().StringSliceVar(&types, "type", nil, "types to include")
	cmd.Flags().StringSliceVarP(&statuses, "status", "s", nil, "statuses to include")
	cmd.Flags().StringSliceVarP(&genres, "genre", "g", nil, "genres, any of which matches")
	cmd.Flags().Float64Var(&minRating, "min-rating", 0, "lowest rating to include")
	cmd.Flags().Float64Var(&maxRating, "max-rating", 10, "highest rating to include")
	return cmd
}

// listItems prints the matching items, with a hint when a search misses
func listItems(w io.Writer, app *App, c query.Criteria, s query.Sort) error {
	all := app.queries.All()
	res := query.Apply(all, c, s)
	if err := printItems(w, res); err != nil {
		return err
	}

	if res.Matched == 0 && c.Search != "" {
		suggestions := query.Suggest(c.Search, all, 3)
		if len(suggestions) > 0 {
			titles := make([]string, len(suggestions))
			for i, sug := range suggestions {
				titles[i] = sug.Item.Title
			}
			fmt.Fprintf(w, "Did you mean: %s?\n", strings.Join(titles, ", "))
		}
	}
	return nil
}
