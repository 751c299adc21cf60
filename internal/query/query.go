package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mmcdole/chronicle/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey is the field a result set is ordered by
type SortKey string

const (
	SortTitle  SortKey = "title"
	SortRating SortKey = "rating"
	SortStatus SortKey = "status"
)

// SortOrder is the direction of a sort
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Sort selects the ordering applied after filtering.
// The zero value sorts by title ascending.
type Sort struct {
	Key   SortKey   `json:"key"`
	Order SortOrder `json:"order"`
}

// SortKeys returns the available sort keys in display order
func SortKeys() []SortKey { return []SortKey{SortTitle, SortRating, SortStatus} }

// String returns the display name for the sort key
func (k SortKey) String() string {
	switch k {
	case SortTitle, "":
		return "Title"
	case SortRating:
		return "Rating"
	case SortStatus:
		return "Status"
	default:
		return "Unknown"
	}
}

// Toggle flips the direction
func (o SortOrder) Toggle() SortOrder {
	if o == Descending {
		return Ascending
	}
	return Descending
}

// ParseSortKey parses a sort key name ("title", "rating", "status")
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortTitle, "":
		return SortTitle, nil
	case SortRating:
		return SortRating, nil
	case SortStatus:
		return SortStatus, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want title, rating or status)", s)
}

// ParseSortOrder parses "asc"/"ascending" or "desc"/"descending"
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("unknown sort order %q (want asc or desc)", s)
}

// Criteria restricts a result set. Every zero field means "no restriction"
// on that axis; set axes combine with AND.
type Criteria struct {
	// Search is a case-insensitive substring. It matches titles only unless
	// FullText also searches descriptions and genre names.
	Search   string
	FullText bool

	Types    []domain.MediaType
	Statuses []domain.Status

	// Genres match when the item carries at least one of them
	Genres []domain.Genre

	MinRating *float64 // inclusive
	MaxRating *float64 // inclusive

	Watchlist       *bool
	WatchlistStatus *domain.WatchlistStatus
}

// IsZero reports whether the criteria restrict nothing
func (c Criteria) IsZero() bool {
	return c.Search == "" && len(c.Types) == 0 && len(c.Statuses) == 0 &&
		len(c.Genres) == 0 && c.MinRating == nil && c.MaxRating == nil &&
		c.Watchlist == nil && c.WatchlistStatus == nil
}

// Matches reports whether item satisfies every set axis
func (c Criteria) Matches(item domain.MediaItem) bool {
	if c.Search != "" && !matchesSearch(item, c.Search, c.FullText) {
		return false
	}
	if len(c.Types) > 0 && !slices.Contains(c.Types, item.Type) {
		return false
	}
	if len(c.Statuses) > 0 && !slices.Contains(c.Statuses, item.Status) {
		return false
	}
	if len(c.Genres) > 0 && !item.HasAnyGenre(c.Genres) {
		return false
	}
	if c.MinRating != nil && item.Rating < *c.MinRating {
		return false
	}
	if c.MaxRating != nil && item.Rating > *c.MaxRating {
		return false
	}
	if c.Watchlist != nil && item.InWatchlist != *c.Watchlist {
		return false
	}
	if c.WatchlistStatus != nil && (!item.InWatchlist || item.WatchlistStatus != *c.WatchlistStatus) {
		return false
	}
	return true
}

func matchesSearch(item domain.MediaItem, term string, fullText bool) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(item.Title), term) {
		return true
	}
	if !fullText {
		return false
	}
	if strings.Contains(strings.ToLower(item.Description), term) {
		return true
	}
	for _, g := range item.Genres {
		if strings.Contains(strings.ToLower(string(g)), term) {
			return true
		}
	}
	return false
}

// Result is a filtered, sorted view of a collection
type Result struct {
	Items   []domain.MediaItem
	Matched int // len(Items)
	Total   int // size of the collection that was filtered
}

// Filter returns the items matching c, preserving their order
func Filter(items []domain.MediaItem, c Criteria) []domain.MediaItem {
	out := make([]domain.MediaItem, 0, len(items))
	for _, item := range items {
		if c.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// SortItems returns a stably sorted copy of items. Title and status use
// locale-aware collation; rating compares numerically.
func SortItems(items []domain.MediaItem, s Sort) []domain.MediaItem {
	out := slices.Clone(items)
	cmp := comparator(s.Key)
	if s.Order == Descending {
		slices.SortStableFunc(out, func(a, b domain.MediaItem) int { return cmp(b, a) })
	} else {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

// Apply filters items with c, then sorts the survivors with s
func Apply(items []domain.MediaItem, c Criteria, s Sort) Result {
	filtered := Filter(items, c)
	return Result{
		Items:   SortItems(filtered, s),
		Matched: len(filtered),
		Total:   len(items),
	}
}

func comparator(key SortKey) func(a, b domain.MediaItem) int {
	switch key {
	case SortRating:
		return func(a, b domain.MediaItem) int {
			switch {
			case a.Rating < b.Rating:
				return -1
			case a.Rating > b.Rating:
				return 1
			}
			return 0
		}
	case SortStatus:
		col := newCollator()
		return func(a, b domain.MediaItem) int {
			return col.CompareString(string(a.Status), string(b.Status))
		}
	default:
		col := newCollator()
		return func(a, b domain.MediaItem) int {
			return col.CompareString(a.Title, b.Title)
		}
	}
}

// newCollator returns a collator for the root locale. Collators keep
// scratch buffers, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und)
}
