package domain

import "strings"

// MediaType distinguishes the kind of title being tracked
type MediaType string

const (
	MediaTypeAnime  MediaType = "Anime"
	MediaTypeManhwa MediaType = "Manhwa"
)

// Status is the publication/airing state of a title
type Status string

const (
	StatusOngoing Status = "Ongoing"
	StatusEnded   Status = "Ended"
	StatusLive    Status = "Live"
)

// Genre is one of the fixed genre tags
type Genre string

const (
	GenreAction        Genre = "Action"
	GenreAdventure     Genre = "Adventure"
	GenreComedy        Genre = "Comedy"
	GenreDrama         Genre = "Drama"
	GenreFantasy       Genre = "Fantasy"
	GenreHorror        Genre = "Horror"
	GenreMystery       Genre = "Mystery"
	GenrePsychological Genre = "Psychological"
	GenreRomance       Genre = "Romance"
	GenreSciFi         Genre = "Sci-Fi"
	GenreSliceOfLife   Genre = "Slice of Life"
	GenreSupernatural  Genre = "Supernatural"
	GenreThriller      Genre = "Thriller"
)

// WatchlistStatus sub-categorizes items on the watchlist
type WatchlistStatus string

const (
	WatchlistPlanning  WatchlistStatus = "Planning"
	WatchlistCurrent   WatchlistStatus = "Current"
	WatchlistCompleted WatchlistStatus = "Completed"
	WatchlistDropped   WatchlistStatus = "Dropped"
)

// Option tables. Display order follows the slice order; adding a value
// to an enum only requires an entry here.
var (
	mediaTypeOptions = []MediaType{MediaTypeAnime, MediaTypeManhwa}

	statusOptions = []Status{StatusOngoing, StatusEnded, StatusLive}

	genreOptions = []Genre{
		GenreAction,
		GenreAdventure,
		GenreComedy,
		GenreDrama,
		GenreFantasy,
		GenreHorror,
		GenreMystery,
		GenrePsychological,
		GenreRomance,
		GenreSciFi,
		GenreSliceOfLife,
		GenreSupernatural,
		GenreThriller,
	}

	watchlistStatusOptions = []WatchlistStatus{
		WatchlistPlanning,
		WatchlistCurrent,
		WatchlistCompleted,
		WatchlistDropped,
	}
)

// AllMediaTypes returns the known media types in display order
func AllMediaTypes() []MediaType { return append([]MediaType(nil), mediaTypeOptions...) }

// AllStatuses returns the known statuses in display order
func AllStatuses() []Status { return append([]Status(nil), statusOptions...) }

// AllGenres returns the known genres in display order
func AllGenres() []Genre { return append([]Genre(nil), genreOptions...) }

// AllWatchlistStatuses returns the known watchlist statuses in display order
func AllWatchlistStatuses() []WatchlistStatus {
	return append([]WatchlistStatus(nil), watchlistStatusOptions...)
}

func (t MediaType) Valid() bool       { return contains(mediaTypeOptions, t) }
func (s Status) Valid() bool          { return contains(statusOptions, s) }
func (g Genre) Valid() bool           { return contains(genreOptions, g) }
func (w WatchlistStatus) Valid() bool { return contains(watchlistStatusOptions, w) }

func (t MediaType) String() string       { return string(t) }
func (s Status) String() string          { return string(s) }
func (g Genre) String() string           { return string(g) }
func (w WatchlistStatus) String() string { return string(w) }

// ParseMediaType matches s (trimmed, exact case) against the known types
func ParseMediaType(s string) (MediaType, bool) {
	return parseOption(mediaTypeOptions, s)
}

// ParseStatus matches s (trimmed, exact case) against the known statuses
func ParseStatus(s string) (Status, bool) {
	return parseOption(statusOptions, s)
}

// ParseGenre matches s (trimmed, exact case) against the known genres
func ParseGenre(s string) (Genre, bool) {
	return parseOption(genreOptions, s)
}

// ParseWatchlistStatus matches s (trimmed, exact case) against the known watchlist statuses
func ParseWatchlistStatus(s string) (WatchlistStatus, bool) {
	return parseOption(watchlistStatusOptions, s)
}

// LookupMediaType is the case-insensitive variant used for user input (flags, keys)
func LookupMediaType(s string) (MediaType, bool) { return lookupOption(mediaTypeOptions, s) }

// LookupStatus is the case-insensitive variant used for user input
func LookupStatus(s string) (Status, bool) { return lookupOption(statusOptions, s) }

// LookupGenre is the case-insensitive variant used for user input
func LookupGenre(s string) (Genre, bool) { return lookupOption(genreOptions, s) }

// LookupWatchlistStatus is the case-insensitive variant used for user input
func LookupWatchlistStatus(s string) (WatchlistStatus, bool) {
	return lookupOption(watchlistStatusOptions, s)
}

// NextWatchlistStatus cycles Planning -> Current -> Completed -> Dropped -> Planning
func NextWatchlistStatus(w WatchlistStatus) WatchlistStatus {
	for i, opt := range watchlistStatusOptions {
		if opt == w {
			return watchlistStatusOptions[(i+1)%len(watchlistStatusOptions)]
		}
	}
	return WatchlistPlanning
}

// KnownGenres drops anything that is not in the genre table, keeping order
func KnownGenres(genres []Genre) []Genre {
	known := make([]Genre, 0, len(genres))
	for _, g := range genres {
		if g.Valid() {
			known = append(known, g)
		}
	}
	return known
}

func contains[T ~string](options []T, v T) bool {
	for _, opt := range options {
		if opt == v {
			return true
		}
	}
	return false
}

func parseOption[T ~string](options []T, s string) (T, bool) {
	v := T(strings.TrimSpace(s))
	if contains(options, v) {
		return v, true
	}
	var zero T
	return zero, false
}

func lookupOption[T ~string](options []T, s string) (T, bool) {
	s = strings.TrimSpace(s)
	for _, opt := range options {
		if strings.EqualFold(string(opt), s) {
			return opt, true
		}
	}
	var zero T
	return zero, false
}
