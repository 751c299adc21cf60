// Package csvio converts media collections to and from the flat CSV layout
// used for backup and restore.
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/mmcdole/chronicle/internal/domain"
)

// Columns is the header row, in export order
var Columns = []string{
	"title",
	"type",
	"genres",
	"description",
	"rating",
	"status",
	"inWatchlist",
	"watchlistStatus",
	"imageUrl",
}

const untitled = "Untitled"

// Parse reads a CSV document with a header row and returns one item per
// data row. Columns are matched by header name; missing columns read as
// empty. Unknown types and statuses fall back to Anime and Ongoing, and
// unknown genre tokens are dropped. Returned items carry no id.
func Parse(r io.Reader) ([]domain.MediaItem, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var items []domain.MediaItem
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		if blank(record) {
			continue
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}
		items = append(items, parseRow(field))
	}
	return items, nil
}

func parseRow(field func(string) string) domain.MediaItem {
	item := domain.MediaItem{
		Title:           field("title"),
		Type:            domain.MediaTypeAnime,
		Genres:          parseGenres(field("genres")),
		Description:     field("description"),
		Status:          domain.StatusOngoing,
		InWatchlist:     field("inWatchlist") == "true",
		WatchlistStatus: domain.WatchlistStatus(field("watchlistStatus")),
		ImageURL:        field("imageUrl"),
	}
	if strings.TrimSpace(item.Title) == "" {
		item.Title = untitled
	}
	if t, ok := domain.ParseMediaType(field("type")); ok {
		item.Type = t
	}
	if s, ok := domain.ParseStatus(field("status")); ok {
		item.Status = s
	}
	item.Rating = parseRating(field("rating"))
	return item
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// parseRating reads the longest leading decimal number, so "8/10" is 8 and
// "7.5 pts" is 7.5. Anything else is 0, as are NaN and values that
// overflow to infinity, which the store cannot encode.
func parseRating(raw string) float64 {
	num := leadingNumber.FindString(strings.TrimSpace(raw))
	if num == "" {
		return 0
	}
	rating, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(rating) || math.IsInf(rating, 0) {
		return 0
	}
	return rating
}

func parseGenres(raw string) []domain.Genre {
	genres := make([]domain.Genre, 0)
	for _, token := range strings.Split(raw, ",") {
		if g, ok := domain.ParseGenre(token); ok {
			genres = append(genres, g)
		}
	}
	return genres
}

// blank reports whether a record holds nothing but whitespace
func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Write encodes items as CSV with a header row
func Write(w io.Writer, items []domain.MediaItem) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, item := range items {
		if err := writer.Write(record(item)); err != nil {
			return fmt.Errorf("writing %q: %w", item.Title, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Serialize returns the CSV text for items
func Serialize(items []domain.MediaItem) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, items); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func record(item domain.MediaItem) []string {
	return []string{
		item.Title,
		string(item.Type),
		item.GenreList(),
		item.Description,
		item.FormattedRating(),
		string(item.Status),
		strconv.FormatBool(item.InWatchlist),
		string(item.WatchlistStatus),
		item.ImageURL,
	}
}

// ExportFilename returns "<appName>-export-<YYYY-MM-DD>.csv" for the day of t
func ExportFilename(appName string, t time.Time) string {
	return fmt.Sprintf("%s-export-%s.csv", appName, t.Format(time.DateOnly))
}

// Detect returns domain.ErrNotCSV unless name carries a .csv extension and
// the content in r sniffs as text.
func Detect(name string, r io.Reader) error {
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		return fmt.Errorf("%s: %w", filepath.Base(name), domain.ErrNotCSV)
	}

	mime, err := mimetype.DetectReader(r)
	if err != nil {
		return fmt.Errorf("sniffing %s: %w", filepath.Base(name), err)
	}
	for m := mime; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return nil
		}
	}
	return fmt.Errorf("%s is %s: %w", filepath.Base(name), mime.String(), domain.ErrNotCSV)
}
