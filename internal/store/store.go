package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/chronicle/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketMedia = []byte("media")
	bucketPrefs = []byte("prefs")
)

// StorageKey is the fixed key the whole collection is stored under
const StorageKey = "media-storage"

// DBFileName is the bolt file created inside the data directory
const DBFileName = "chronicle.db"

// LibraryStore implements domain.Store using BoltDB.
type LibraryStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

var _ domain.Store = (*LibraryStore)(nil)

// NewLibraryStore opens (or creates) the bolt file under dataDir.
// An empty dataDir gives a memory-only store.
func NewLibraryStore(dataDir string) (*LibraryStore, error) {
	if dataDir == "" {
		// Memory-only mode (no persistence)
		return &LibraryStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketMedia, bucketPrefs} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &LibraryStore{db: db, cache: make(map[string][]byte)}, nil
}

// Path returns the bolt file path, or "" in memory-only mode
func (s *LibraryStore) Path() string {
	if s.db == nil {
		return ""
	}
	return s.db.Path()
}

func (s *LibraryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *LibraryStore) get(bucket []byte, key string, dest interface{}) (bool, error) {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return true, json.Unmarshal(data, dest)
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false, nil
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return true, json.Unmarshal(data, dest)
}

func (s *LibraryStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if s.db != nil {
		err = s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucket).Put([]byte(key), data)
		})
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.cache[string(bucket)+":"+key] = data
	s.mu.Unlock()
	return nil
}

// === Collection ===

func (s *LibraryStore) LoadItems() ([]domain.MediaItem, bool, error) {
	var items []domain.MediaItem
	ok, err := s.get(bucketMedia, StorageKey, &items)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s: %w", StorageKey, err)
	}
	return items, ok, nil
}

func (s *LibraryStore) SaveItems(items []domain.MediaItem) error {
	if items == nil {
		items = []domain.MediaItem{}
	}
	if err := s.set(bucketMedia, StorageKey, items); err != nil {
		return fmt.Errorf("failed to save %s: %w", StorageKey, err)
	}
	return nil
}

// === Preferences ===

func (s *LibraryStore) GetPreference(key string, dest any) bool {
	ok, err := s.get(bucketPrefs, key, dest)
	return ok && err == nil
}

func (s *LibraryStore) SavePreference(key string, value any) error {
	return s.set(bucketPrefs, key, value)
}
