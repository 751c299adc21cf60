package catalog

import (
	"fmt"
	"strings"

	"github.com/mmcdole/chronicle/internal/domain"
)

// Queries provides synchronous reads over a Collection.
// Every result is a copy; callers cannot reach the stored items.
type Queries struct {
	collection *Collection
}

// NewQueries creates a new Queries instance.
func NewQueries(collection *Collection) *Queries {
	return &Queries{collection: collection}
}

// All returns every item in insertion order
func (q *Queries) All() []domain.MediaItem {
	return cloneAll(q.collection.items)
}

func (q *Queries) Count() int {
	return len(q.collection.items)
}

// Get returns the item with id or domain.ErrItemNotFound
func (q *Queries) Get(id string) (domain.MediaItem, error) {
	idx := q.collection.indexOf(id)
	if idx < 0 {
		return domain.MediaItem{}, domain.ErrItemNotFound
	}
	return q.collection.items[idx].Clone(), nil
}

// Resolve finds an item by full id or by a prefix that matches exactly one id
func (q *Queries) Resolve(ref string) (domain.MediaItem, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.MediaItem{}, domain.ErrItemNotFound
	}
	if item, err := q.Get(ref); err == nil {
		return item, nil
	}

	match := -1
	for i, item := range q.collection.items {
		if !strings.HasPrefix(item.ID, ref) {
			continue
		}
		if match >= 0 {
			return domain.MediaItem{}, fmt.Errorf("%w: %q", domain.ErrAmbiguousID, ref)
		}
		match = i
	}
	if match < 0 {
		return domain.MediaItem{}, domain.ErrItemNotFound
	}
	return q.collection.items[match].Clone(), nil
}

// Watchlist returns watchlisted items, optionally narrowed to one status
func (q *Queries) Watchlist(status *domain.WatchlistStatus) []domain.MediaItem {
	var out []domain.MediaItem
	for _, item := range q.collection.items {
		if !item.InWatchlist {
			continue
		}
		if status != nil && item.WatchlistStatus != *status {
			continue
		}
		out = append(out, item.Clone())
	}
	return out
}

// WatchlistCounts returns how many watchlisted items sit in each status
func (q *Queries) WatchlistCounts() map[domain.WatchlistStatus]int {
	counts := make(map[domain.WatchlistStatus]int)
	for _, item := range q.collection.items {
		if item.InWatchlist {
			counts[item.WatchlistStatus]++
		}
	}
	return counts
}

func cloneAll(items []domain.MediaItem) []domain.MediaItem {
	out := make([]domain.MediaItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
