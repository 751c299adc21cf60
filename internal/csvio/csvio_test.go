package csvio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/chronicle/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "title,type,genres,description,rating,status,inWatchlist,watchlistStatus,imageUrl\n"

func TestParse_MalformedRowFallsBackToDefaults(t *testing.T) {
	input := header + `,Cartoon,"Action,BadGenre",,abc,,yes,,` + "\n"

	items, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 1)

	got := items[0]
	assert.Equal(t, "Untitled", got.Title)
	assert.Equal(t, domain.MediaTypeAnime, got.Type)
	assert.Equal(t, []domain.Genre{domain.GenreAction}, got.Genres)
	assert.Equal(t, 0.0, got.Rating)
	assert.Equal(t, domain.StatusOngoing, got.Status)
	assert.False(t, got.InWatchlist)
	assert.Empty(t, got.ID)
}

func TestParse_KnownValues(t *testing.T) {
	input := header +
		`Solo Leveling,Manhwa,"Action, Fantasy",Hunters and gates,9.5,Ended,true,Current,https://example.com/solo.jpg` + "\n"

	items, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, domain.MediaItem{
		Title:           "Solo Leveling",
		Type:            domain.MediaTypeManhwa,
		Genres:          []domain.Genre{domain.GenreAction, domain.GenreFantasy},
		Description:     "Hunters and gates",
		Rating:          9.5,
		Status:          domain.StatusEnded,
		InWatchlist:     true,
		WatchlistStatus: domain.WatchlistCurrent,
		ImageURL:        "https://example.com/solo.jpg",
	}, items[0])
}

func TestParse_Rating(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"9.5", 9.5},
		{" 8 ", 8},
		{".5", 0.5},
		{"8/10", 8},
		{"7.5 pts", 7.5},
		{"1e1", 10},
		{"1e", 1},
		{"abc", 0},
		{"", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"-Inf", 0},
		{"+Infinity", 0},
		{"1e999", 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			items, err := Parse(strings.NewReader(header + "X,Anime,,,\"" + tt.raw + "\",,,,\n"))
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, tt.want, items[0].Rating)
		})
	}
}

func TestParse_InWatchlistRequiresLiteralTrue(t *testing.T) {
	for _, value := range []string{"TRUE", "True", "1", "yes", " true"} {
		items, err := Parse(strings.NewReader(header + "X,Anime,,,,,\"" + value + "\",,\n"))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.False(t, items[0].InWatchlist, value)
	}
}

func TestParse_ColumnsByNameAndShortRows(t *testing.T) {
	input := "status,title\nEnded,Monster\nLive\n"

	items, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Monster", items[0].Title)
	assert.Equal(t, domain.StatusEnded, items[0].Status)
	assert.Empty(t, items[0].Genres)

	assert.Equal(t, "Untitled", items[1].Title)
	assert.Equal(t, domain.StatusLive, items[1].Status)
}

func TestParse_SkipsEmptyLines(t *testing.T) {
	input := header + "\nA,Anime,Drama,,5,Ended,false,,\n\n,,,,,,,,\nB,Anime,Drama,,6,Ended,false,,\n"

	items, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Title)
	assert.Equal(t, "B", items[1].Title)
}

func TestParse_EmptyInput(t *testing.T) {
	items, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = Parse(strings.NewReader(header))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestParse_MalformedQuoting(t *testing.T) {
	_, err := Parse(strings.NewReader(header + "\"unterminated,Anime\n"))
	assert.Error(t, err)
}

func TestSerialize(t *testing.T) {
	items := []domain.MediaItem{{
		ID:          "ignored",
		Title:       "Naruto",
		Type:        domain.MediaTypeAnime,
		Genres:      []domain.Genre{domain.GenreAction, domain.GenreAdventure},
		Description: "Ninja, \"believe it\"",
		Rating:      8,
		Status:      domain.StatusEnded,
	}}

	got, err := Serialize(items)
	require.NoError(t, err)

	want := header +
		`Naruto,Anime,"Action, Adventure","Ninja, ""believe it""",8,Ended,false,,` + "\n"
	assert.Equal(t, want, got)
}

func TestSerializeParse_RoundTrip(t *testing.T) {
	items := []domain.MediaItem{
		{
			Title:       "Naruto",
			Type:        domain.MediaTypeAnime,
			Genres:      []domain.Genre{domain.GenreAction, domain.GenreAdventure},
			Description: "Line one\nline two, with comma",
			Rating:      8,
			Status:      domain.StatusEnded,
		},
		{
			Title:           "Tower of God",
			Type:            domain.MediaTypeManhwa,
			Genres:          []domain.Genre{domain.GenreSliceOfLife, domain.GenreSciFi},
			Rating:          7.5,
			Status:          domain.StatusLive,
			InWatchlist:     true,
			WatchlistStatus: domain.WatchlistDropped,
			ImageURL:        "https://example.com/tog.png",
		},
		{
			Title:  "Hand edited",
			Type:   domain.MediaTypeAnime,
			Genres: []domain.Genre{domain.GenreHorror, "Isekai"},
			Status: domain.StatusOngoing,
			Rating: 0.5,
		},
		{
			Title:       "Windows notes",
			Type:        domain.MediaTypeAnime,
			Genres:      []domain.Genre{domain.GenreDrama},
			Description: "first\r\nsecond\rthird",
			Status:      domain.StatusEnded,
		},
	}
	// Items reach an export in their stored form
	for i := range items {
		items[i].NormalizeLineBreaks()
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, items))

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, len(items))

	for i, want := range items {
		got := parsed[i]
		assert.Equal(t, want.Title, got.Title)
		assert.Equal(t, want.Type, got.Type)
		assert.Equal(t, want.Description, got.Description)
		assert.Equal(t, want.Rating, got.Rating)
		assert.Equal(t, want.Status, got.Status)
		assert.Equal(t, want.InWatchlist, got.InWatchlist)
		assert.Equal(t, want.WatchlistStatus, got.WatchlistStatus)
		assert.Equal(t, want.ImageURL, got.ImageURL)
		assert.Equal(t, domain.KnownGenres(want.Genres), got.Genres)
	}
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2024, time.March, 9, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "otaku-chronicle-export-2024-03-09.csv", ExportFilename("otaku-chronicle", at))
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content []byte
		wantErr bool
	}{
		{name: "csv text", file: "backup.csv", content: []byte(header + "A,Anime,,,,,,,\n")},
		{name: "upper case extension", file: "BACKUP.CSV", content: []byte(header)},
		{name: "empty csv", file: "empty.csv", content: nil},
		{name: "wrong extension", file: "backup.json", content: []byte(header), wantErr: true},
		{name: "no extension", file: "backup", content: []byte(header), wantErr: true},
		{name: "binary content", file: "image.csv", content: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Detect(tt.file, bytes.NewReader(tt.content))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrNotCSV)
				return
			}
			assert.NoError(t, err)
		})
	}
}
