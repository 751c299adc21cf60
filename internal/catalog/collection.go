package catalog

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mmcdole/chronicle/internal/domain"
)

// Collection owns the ordered item list and writes it through to the
// store after every mutation. It is not safe for concurrent use; one
// user action runs at a time.
type Collection struct {
	items  []domain.MediaItem
	store  domain.Store
	logger *slog.Logger
	newID  func() string
}

// NewCollection creates an empty collection backed by store.
// Call Load to rehydrate persisted items.
func NewCollection(store domain.Store, logger *slog.Logger) *Collection {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection{store: store, logger: logger, newID: uuid.NewString}
}

// Load replaces the in-memory list with whatever the store holds
func (c *Collection) Load() error {
	items, ok, err := c.store.LoadItems()
	if err != nil {
		c.logger.Error("failed to load collection", "error", err)
		return err
	}
	if !ok {
		c.logger.Debug("no saved collection, starting empty")
		c.items = nil
		return nil
	}
	c.items = items
	c.logger.Debug("loaded collection", "count", len(items))
	return nil
}

// Add appends item under a fresh id and returns the stored copy.
// Items always enter the collection off the watchlist.
func (c *Collection) Add(item domain.MediaItem) (domain.MediaItem, error) {
	stored := item.Clone()
	stored.ID = c.uniqueID()
	stored.InWatchlist = false
	stored.NormalizeLineBreaks()
	stored.NormalizeWatchlist()
	if stored.Genres == nil {
		stored.Genres = []domain.Genre{}
	}

	c.items = append(c.items, stored)
	c.logger.Info("added item", "id", stored.ID, "title", stored.Title)
	return stored.Clone(), c.persist()
}

// Update merges patch into the item with id. Unknown ids are ignored;
// the bool reports whether anything matched.
func (c *Collection) Update(id string, patch domain.MediaPatch) (bool, error) {
	return c.mutate(id, "updated item", func(item *domain.MediaItem) {
		patch.ApplyTo(item)
	})
}

// Delete removes the item with id. Unknown ids are ignored.
func (c *Collection) Delete(id string) (bool, error) {
	idx := c.indexOf(id)
	if idx < 0 {
		c.logger.Debug("delete ignored, no such item", "id", id)
		return false, nil
	}
	c.items = append(c.items[:idx:idx], c.items[idx+1:]...)
	c.logger.Info("deleted item", "id", id)
	return true, c.persist()
}

// ToggleWatchlist flips watchlist membership. Joining starts at Planning;
// leaving clears the status.
func (c *Collection) ToggleWatchlist(id string) (bool, error) {
	return c.mutate(id, "toggled watchlist", func(item *domain.MediaItem) {
		item.InWatchlist = !item.InWatchlist
		if item.InWatchlist {
			item.WatchlistStatus = domain.WatchlistPlanning
		}
		item.NormalizeWatchlist()
	})
}

// SetWatchlistStatus sets the sub-status and puts the item on the watchlist
func (c *Collection) SetWatchlistStatus(id string, status domain.WatchlistStatus) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: unknown watchlist status %q", domain.ErrInvalidItem, status)
	}
	return c.mutate(id, "set watchlist status", func(item *domain.MediaItem) {
		item.InWatchlist = true
		item.WatchlistStatus = status
	})
}

// RemoveFromWatchlist takes the item off the watchlist regardless of its
// current state and clears the status.
func (c *Collection) RemoveFromWatchlist(id string) (bool, error) {
	return c.mutate(id, "removed from watchlist", func(item *domain.MediaItem) {
		item.InWatchlist = false
		item.NormalizeWatchlist()
	})
}

// ImportMany appends items in input order, each under a fresh id, with a
// single write at the end.
func (c *Collection) ImportMany(items []domain.MediaItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	for _, item := range items {
		stored := item.Clone()
		stored.ID = c.uniqueID()
		stored.NormalizeLineBreaks()
		stored.NormalizeWatchlist()
		if stored.Genres == nil {
			stored.Genres = []domain.Genre{}
		}
		c.items = append(c.items, stored)
	}
	c.logger.Info("imported items", "count", len(items), "total", len(c.items))
	return len(items), c.persist()
}

// ClearAll empties the collection
func (c *Collection) ClearAll() error {
	removed := len(c.items)
	c.items = nil
	c.logger.Info("cleared collection", "removed", removed)
	return c.persist()
}

// --- Private helpers ---

func (c *Collection) mutate(id, action string, fn func(item *domain.MediaItem)) (bool, error) {
	idx := c.indexOf(id)
	if idx < 0 {
		c.logger.Debug("mutation ignored, no such item", "id", id, "action", action)
		return false, nil
	}
	fn(&c.items[idx])
	c.logger.Info(action, "id", id)
	return true, c.persist()
}

func (c *Collection) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// uniqueID draws ids until one is unused; uuid collisions are not expected
// but the collection invariant does not rely on that.
func (c *Collection) uniqueID() string {
	for {
		id := c.newID()
		if c.indexOf(id) < 0 {
			return id
		}
	}
}

func (c *Collection) persist() error {
	if err := c.store.SaveItems(c.items); err != nil {
		c.logger.Error("failed to save collection", "error", err, "count", len(c.items))
		return err
	}
	return nil
}
