// Package transfer implements the CSV backup and restore workflows on top
// of the catalog.
package transfer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mmcdole/chronicle/internal/catalog"
	"github.com/mmcdole/chronicle/internal/csvio"
	"github.com/mmcdole/chronicle/internal/domain"
)

// Service moves whole collections in and out of CSV files
type Service struct {
	collection *catalog.Collection
	queries    *catalog.Queries
	appName    string
	logger     *slog.Logger
}

// NewService creates a transfer service. appName prefixes export filenames.
func NewService(collection *catalog.Collection, appName string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		collection: collection,
		queries:    catalog.NewQueries(collection),
		appName:    appName,
		logger:     logger,
	}
}

// ImportFile appends every row of the CSV file at path to the collection
// and returns the number of items added. The collection is left untouched
// when the file is not CSV, fails to parse, or holds no rows.
func (s *Service) ImportFile(path string) (int, error) {
	items, err := s.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return s.add(filepath.Base(path), items)
}

// Import is ImportFile for an already-open source
func (s *Service) Import(name string, r io.ReadSeeker) (int, error) {
	items, err := s.Read(name, r)
	if err != nil {
		return 0, err
	}
	return s.add(name, items)
}

// ReadFile parses the CSV file at path without touching the collection
func (s *Service) ReadFile(path string) ([]domain.MediaItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	return s.Read(filepath.Base(path), f)
}

// Read checks that r holds CSV text and parses it. A file with a header
// and no rows is ErrEmptyImport.
func (s *Service) Read(name string, r io.ReadSeeker) ([]domain.MediaItem, error) {
	if err := csvio.Detect(name, r); err != nil {
		s.logger.Warn("rejected import", "file", name, "error", err)
		return nil, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding %s: %w", name, err)
	}

	items, err := csvio.Parse(r)
	if err != nil {
		s.logger.Warn("failed to parse import", "file", name, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrNotCSV, err)
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyImport
	}
	return items, nil
}

func (s *Service) add(name string, items []domain.MediaItem) (int, error) {
	added, err := s.collection.ImportMany(items)
	if err != nil {
		return added, err
	}
	s.logger.Info("imported file", "file", name, "count", added)
	return added, nil
}

// ExportFile writes the collection to <dir>/<app>-export-<date>.csv and
// returns the path written. An empty collection produces no file.
func (s *Service) ExportFile(dir string, now time.Time) (string, error) {
	return s.WriteFile(dir, s.queries.All(), now)
}

// WriteFile is ExportFile for a snapshot of items taken by the caller
func (s *Service) WriteFile(dir string, items []domain.MediaItem, now time.Time) (string, error) {
	if len(items) == 0 {
		return "", domain.ErrNothingToExport
	}

	text, err := csvio.Serialize(items)
	if err != nil {
		return "", fmt.Errorf("serializing export: %w", err)
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, csvio.ExportFilename(s.appName, now))
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}

	s.logger.Info("exported collection", "path", path, "count", len(items))
	return path, nil
}
