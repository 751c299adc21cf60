package domain

// Store persists the item collection and small UI preferences locally.
// The collection is always written wholesale.
type Store interface {
	// LoadItems returns the persisted collection; ok is false when nothing was saved yet
	LoadItems() (items []MediaItem, ok bool, err error)
	SaveItems(items []MediaItem) error

	GetPreference(key string, dest any) bool
	SavePreference(key string, value any) error

	Close() error
}
