package domain

import (
	"strconv"
	"strings"
)

// MediaItem is a single anime/manhwa catalog entry.
// JSON field names match the persisted collection layout.
type MediaItem struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Type            MediaType       `json:"type"`
	Genres          []Genre         `json:"genres"`
	Description     string          `json:"description"`
	Rating          float64         `json:"rating"` // 0-10 in 0.5 steps
	Status          Status          `json:"status"`
	InWatchlist     bool            `json:"inWatchlist"`
	WatchlistStatus WatchlistStatus `json:"watchlistStatus,omitempty"` // empty unless InWatchlist
	ImageURL        string          `json:"imageUrl,omitempty"`
}

// Clone returns a deep copy so callers never share the genre slice
func (m MediaItem) Clone() MediaItem {
	c := m
	if m.Genres != nil {
		c.Genres = append([]Genre(nil), m.Genres...)
	}
	return c
}

// HasGenre reports whether the item is tagged with g
func (m MediaItem) HasGenre(g Genre) bool {
	for _, have := range m.Genres {
		if have == g {
			return true
		}
	}
	return false
}

// HasAnyGenre reports whether the item carries at least one of genres
func (m MediaItem) HasAnyGenre(genres []Genre) bool {
	for _, g := range genres {
		if m.HasGenre(g) {
			return true
		}
	}
	return false
}

// GenreList returns the genres joined with ", "
func (m MediaItem) GenreList() string {
	names := make([]string, len(m.Genres))
	for i, g := range m.Genres {
		names[i] = string(g)
	}
	return strings.Join(names, ", ")
}

// FormattedRating returns the rating in its shortest decimal form ("8", "7.5")
func (m MediaItem) FormattedRating() string {
	return strconv.FormatFloat(m.Rating, 'f', -1, 64)
}

// WatchlistLabel returns the watchlist state for display
func (m MediaItem) WatchlistLabel() string {
	if !m.InWatchlist {
		return ""
	}
	if m.WatchlistStatus == WatchlistCurrent {
		return "Currently Watching"
	}
	return string(m.WatchlistStatus)
}

// NormalizeWatchlist enforces the watchlist invariant: the status is empty
// whenever the item is off the watchlist, and a watchlisted item always
// carries a known status.
func (m *MediaItem) NormalizeWatchlist() {
	if !m.InWatchlist {
		m.WatchlistStatus = ""
		return
	}
	if !m.WatchlistStatus.Valid() {
		m.WatchlistStatus = WatchlistPlanning
	}
}

// NormalizeLineBreaks rewrites CRLF line breaks in the free-text fields as
// LF. CSV readers fold CRLF inside quoted fields, so only LF survives an
// export and re-import.
func (m *MediaItem) NormalizeLineBreaks() {
	m.Title = strings.ReplaceAll(m.Title, "\r\n", "\n")
	m.Description = strings.ReplaceAll(m.Description, "\r\n", "\n")
}

// MediaPatch is a partial update; nil fields are left untouched
type MediaPatch struct {
	Title           *string
	Type            *MediaType
	Genres          []Genre // nil = untouched, empty = clear
	Description     *string
	Rating          *float64
	Status          *Status
	InWatchlist     *bool
	WatchlistStatus *WatchlistStatus
	ImageURL        *string
}

// IsEmpty reports whether the patch would change nothing
func (p MediaPatch) IsEmpty() bool {
	return p.Title == nil && p.Type == nil && p.Genres == nil && p.Description == nil &&
		p.Rating == nil && p.Status == nil && p.InWatchlist == nil &&
		p.WatchlistStatus == nil && p.ImageURL == nil
}

// ApplyTo merges the patch into item. Setting a watchlist status puts the
// item on the watchlist; taking it off clears the status.
func (p MediaPatch) ApplyTo(item *MediaItem) {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Type != nil {
		item.Type = *p.Type
	}
	if p.Genres != nil {
		item.Genres = append([]Genre{}, p.Genres...)
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Rating != nil {
		item.Rating = *p.Rating
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.ImageURL != nil {
		item.ImageURL = *p.ImageURL
	}
	if p.InWatchlist != nil {
		item.InWatchlist = *p.InWatchlist
	}
	if p.WatchlistStatus != nil {
		item.WatchlistStatus = *p.WatchlistStatus
		if *p.WatchlistStatus != "" && (p.InWatchlist == nil || *p.InWatchlist) {
			item.InWatchlist = true
		}
	}
	item.NormalizeLineBreaks()
	item.NormalizeWatchlist()
}
