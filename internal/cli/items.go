package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmcdole/chronicle/internal/domain"
	"github.com/mmcdole/chronicle/internal/form"
	"github.com/spf13/cobra"
)

// itemFlags are the editable fields of an item
type itemFlags struct {
	title       string
	itemType    string
	genres      []string
	description string
	rating      float64
	status      string
	image       string
	watchlist   string
}

func (f *itemFlags) bind(cmd *cobra.Command, forAdd bool) {
	fl := cmd.Flags()
	fl.StringVarP(&f.title, "title", "t", "", "title")
	fl.StringSliceVarP(&f.genres, "genre", "g", nil, "genre, repeat or comma-separate for several")
	fl.StringVarP(&f.description, "description", "d", "", "description")
	fl.Float64VarP(&f.rating, "rating", "r", 0, "rating from 0 to 10 in steps of 0.5")
	fl.StringVar(&f.image, "image", "", "cover image URL")

	if forAdd {
		fl.StringVar(&f.itemType, "type", string(domain.MediaTypeAnime), "Anime or Manhwa")
		fl.StringVarP(&f.status, "status", "s", string(domain.StatusOngoing), "Ongoing, Ended or Live")
		fl.StringVarP(&f.watchlist, "watchlist", "w", "", "also add to the watchlist with this status")
		_ = cmd.MarkFlagRequired("title")
		return
	}
	fl.StringVar(&f.itemType, "type", "", "Anime or Manhwa")
	fl.StringVarP(&f.status, "status", "s", "", "Ongoing, Ended or Live")
	fl.StringVarP(&f.watchlist, "watchlist", "w", "", `watchlist status, or "none" to take it off`)
}

// Unknown names pass through unchanged so validation can name them
func lookupType(s string) domain.MediaType {
	if t, ok := domain.LookupMediaType(s); ok {
		return t
	}
	return domain.MediaType(s)
}

func lookupStatus(s string) domain.Status {
	if st, ok := domain.LookupStatus(s); ok {
		return st
	}
	return domain.Status(s)
}

func lookupGenres(names []string) []domain.Genre {
	genres := make([]domain.Genre, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if g, ok := domain.LookupGenre(name); ok {
			genres = append(genres, g)
		} else {
			genres = append(genres, domain.Genre(name))
		}
	}
	return genres
}

func parseWatchlistStatus(s string) (domain.WatchlistStatus, error) {
	if w, ok := domain.LookupWatchlistStatus(s); ok {
		return w, nil
	}
	return "", fmt.Errorf("%w: unknown watchlist status %q (want Planning, Current, Completed or Dropped)", domain.ErrInvalidItem, s)
}

func (f *itemFlags) input() form.Input {
	return form.Input{
		Title:       f.title,
		Type:        lookupType(f.itemType),
		Genres:      lookupGenres(f.genres),
		Description: f.description,
		Rating:      f.rating,
		Status:      lookupStatus(f.status),
		ImageURL:    f.image,
	}
}

// patch builds a patch from the flags the user actually set
func (f *itemFlags) patch(cmd *cobra.Command) (domain.MediaPatch, error) {
	var p domain.MediaPatch
	changed := cmd.Flags().Changed

	if changed("title") {
		title := strings.TrimSpace(f.title)
		p.Title = &title
	}
	if changed("type") {
		t := lookupType(f.itemType)
		p.Type = &t
	}
	if changed("genre") {
		p.Genres = lookupGenres(f.genres)
	}
	if changed("description") {
		p.Description = &f.description
	}
	if changed("rating") {
		p.Rating = &f.rating
	}
	if changed("status") {
		s := lookupStatus(f.status)
		p.Status = &s
	}
	if changed("image") {
		url := strings.TrimSpace(f.image)
		p.ImageURL = &url
	}
	if changed("watchlist") {
		switch strings.ToLower(strings.TrimSpace(f.watchlist)) {
		case "", "none", "off":
			off := false
			p.InWatchlist = &off
		default:
			w, err := parseWatchlistStatus(f.watchlist)
			if err != nil {
				return p, err
			}
			on := true
			p.InWatchlist = &on
			p.WatchlistStatus = &w
		}
	}
	return p, nil
}

func newAddCmd(app *App) *cobra.Command {
	f := &itemFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to the collection",
		Example: `  chronicle add --title "Frieren" --genre Fantasy,Adventure --rating 9.5 --status Ended
  chronicle add -t "Solo Leveling" --type Manhwa -g Action -w Current`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := f.input()
			if err := form.Validate(in); err != nil {
				return err
			}

			var status domain.WatchlistStatus
			if f.watchlist != "" {
				var err error
				if status, err = parseWatchlistStatus(f.watchlist); err != nil {
					return err
				}
			}

			item, err := app.collection.Add(in.Item())
			if err != nil {
				return fmt.Errorf("failed to save collection: %w", err)
			}
			if status != "" {
				if _, err := app.collection.SetWatchlistStatus(item.ID, status); err != nil {
					return fmt.Errorf("failed to save collection: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", item.Title, shortID(item.ID))
			return nil
		},
	}
	f.bind(cmd, true)
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	f := &itemFlags{}
	cmd := &cobra.Command{
		Use:     "edit <id>",
		Short:   "Change fields of an item",
		Example: `  chronicle edit 3f2a --rating 8.5 --watchlist Completed`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := app.queries.Resolve(args[0])
			if err != nil {
				return err
			}

			patch, err := f.patch(cmd)
			if err != nil {
				return err
			}
			if patch.IsEmpty() {
				return errors.New("nothing to change, pass at least one field flag")
			}
			if err := form.ValidatePatch(item, patch); err != nil {
				return err
			}

			found, err := app.collection.Update(item.ID, patch)
			if err != nil {
				return fmt.Errorf("failed to save collection: %w", err)
			}
			if !found {
				return domain.ErrItemNotFound
			}

			updated, _ := app.queries.Get(item.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", updated.Title)
			return nil
		},
	}
	f.bind(cmd, false)
	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete items from the collection",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Resolve everything first so a typo deletes nothing
			items := make([]domain.MediaItem, 0, len(args))
			for _, ref := range args {
				item, err := app.queries.Resolve(ref)
				if err != nil {
					return fmt.Errorf("%s: %w", ref, err)
				}
				items = append(items, item)
			}

			for _, item := range items {
				if _, err := app.collection.Delete(item.ID); err != nil {
					return fmt.Errorf("failed to save collection: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", item.Title)
			}
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := app.queries.Resolve(args[0])
			if err != nil {
				return err
			}
			return printItem(cmd.OutOrStdout(), item)
		},
	}
}
