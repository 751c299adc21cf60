package query

import (
	"testing"

	"github.com/mmcdole/chronicle/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func item(id, title string, rating float64, status domain.Status, genres ...domain.Genre) domain.MediaItem {
	return domain.MediaItem{
		ID:     id,
		Title:  title,
		Type:   domain.MediaTypeAnime,
		Genres: genres,
		Rating: rating,
		Status: status,
	}
}

func ids(items []domain.MediaItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func fixture() []domain.MediaItem {
	naruto := item("naruto", "Naruto", 8, domain.StatusEnded, domain.GenreAction, domain.GenreAdventure)
	naruto.Description = "A ninja who wants to be Hokage"

	bleach := item("bleach", "Bleach", 6, domain.StatusOngoing, domain.GenreAction, domain.GenreSupernatural)

	solo := item("solo", "Solo Leveling", 9.5, domain.StatusOngoing, domain.GenreFantasy)
	solo.Type = domain.MediaTypeManhwa
	solo.InWatchlist = true
	solo.WatchlistStatus = domain.WatchlistCurrent

	tower := item("tower", "Tower of God", 7.5, domain.StatusLive, domain.GenreDrama, domain.GenreFantasy)
	tower.Type = domain.MediaTypeManhwa
	tower.InWatchlist = true
	tower.WatchlistStatus = domain.WatchlistPlanning

	return []domain.MediaItem{naruto, bleach, solo, tower}
}

func TestSort_TitleAndRatingScenario(t *testing.T) {
	a := item("A", "Naruto", 8, domain.StatusEnded)
	b := item("B", "Bleach", 6, domain.StatusOngoing)
	items := []domain.MediaItem{a, b}

	byTitle := SortItems(items, Sort{Key: SortTitle, Order: Ascending})
	assert.Equal(t, []string{"B", "A"}, ids(byTitle))

	byRating := SortItems(items, Sort{Key: SortRating, Order: Descending})
	assert.Equal(t, []string{"A", "B"}, ids(byRating))

	// Input untouched
	assert.Equal(t, []string{"A", "B"}, ids(items))
}

func TestSort_ZeroValueIsTitleAscending(t *testing.T) {
	got := SortItems(fixture(), Sort{})
	assert.Equal(t, []string{"bleach", "naruto", "solo", "tower"}, ids(got))
}

func TestSort_Status(t *testing.T) {
	asc := SortItems(fixture(), Sort{Key: SortStatus, Order: Ascending})
	assert.Equal(t, []string{"naruto", "tower", "bleach", "solo"}, ids(asc))

	desc := SortItems(fixture(), Sort{Key: SortStatus, Order: Descending})
	assert.Equal(t, []string{"bleach", "solo", "tower", "naruto"}, ids(desc),
		"ties keep their prior relative order")
}

func TestSort_IsStableOnTies(t *testing.T) {
	items := []domain.MediaItem{
		item("1", "X", 5, domain.StatusOngoing),
		item("2", "Y", 5, domain.StatusOngoing),
		item("3", "Z", 5, domain.StatusOngoing),
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids(SortItems(items, Sort{Key: SortRating, Order: Ascending})))
	assert.Equal(t, []string{"1", "2", "3"}, ids(SortItems(items, Sort{Key: SortRating, Order: Descending})))
}

func TestSort_TitleIsLocaleAware(t *testing.T) {
	items := []domain.MediaItem{
		item("z", "zebra", 0, domain.StatusOngoing),
		item("e", "Été", 0, domain.StatusOngoing),
		item("a", "apple", 0, domain.StatusOngoing),
	}
	got := SortItems(items, Sort{Key: SortTitle})
	assert.Equal(t, []string{"a", "e", "z"}, ids(got), "case and accents do not split the alphabet")
}

func TestFilter_TitleSearchIsCaseInsensitiveSubstring(t *testing.T) {
	got := Filter(fixture(), Criteria{Search: "LEVEL"})
	assert.Equal(t, []string{"solo"}, ids(got))

	// Description only matches in full-text mode
	assert.Empty(t, Filter(fixture(), Criteria{Search: "hokage"}))
	assert.Equal(t, []string{"naruto"}, ids(Filter(fixture(), Criteria{Search: "hokage", FullText: true})))

	// Genre names match in full-text mode
	got = Filter(fixture(), Criteria{Search: "supernat", FullText: true})
	assert.Equal(t, []string{"bleach"}, ids(got))
}

func TestFilter_TypeAndStatusSets(t *testing.T) {
	got := Filter(fixture(), Criteria{Types: []domain.MediaType{domain.MediaTypeManhwa}})
	assert.Equal(t, []string{"solo", "tower"}, ids(got))

	got = Filter(fixture(), Criteria{Statuses: []domain.Status{domain.StatusEnded, domain.StatusLive}})
	assert.Equal(t, []string{"naruto", "tower"}, ids(got))
}

func TestFilter_GenreOrSemantics(t *testing.T) {
	items := []domain.MediaItem{
		item("x", "X", 5, domain.StatusOngoing, domain.GenreDrama, domain.GenreAction),
		item("y", "Y", 5, domain.StatusOngoing, domain.GenreHorror),
	}
	got := Filter(items, Criteria{Genres: []domain.Genre{domain.GenreAction, domain.GenreComedy}})
	assert.Equal(t, []string{"x"}, ids(got))
}

func TestFilter_SingleGenreRequiresExactGenre(t *testing.T) {
	got := Filter(fixture(), Criteria{Genres: []domain.Genre{domain.GenreFantasy}})
	assert.Equal(t, []string{"solo", "tower"}, ids(got))
}

func TestFilter_RatingRangeIsInclusive(t *testing.T) {
	got := Filter(fixture(), Criteria{MinRating: ptr(7.5), MaxRating: ptr(9.5)})
	assert.Equal(t, []string{"naruto", "solo", "tower"}, ids(got))

	got = Filter(fixture(), Criteria{MaxRating: ptr(6.0)})
	assert.Equal(t, []string{"bleach"}, ids(got))
}

func TestFilter_Watchlist(t *testing.T) {
	got := Filter(fixture(), Criteria{Watchlist: ptr(true)})
	assert.Equal(t, []string{"solo", "tower"}, ids(got))

	got = Filter(fixture(), Criteria{WatchlistStatus: ptr(domain.WatchlistPlanning)})
	assert.Equal(t, []string{"tower"}, ids(got))
}

func TestFilter_AxesCombineWithAnd(t *testing.T) {
	got := Filter(fixture(), Criteria{
		Types:     []domain.MediaType{domain.MediaTypeManhwa},
		Genres:    []domain.Genre{domain.GenreFantasy, domain.GenreAction},
		MinRating: ptr(8.0),
	})
	assert.Equal(t, []string{"solo"}, ids(got))
}

func TestFilter_Idempotent(t *testing.T) {
	criteria := []Criteria{
		{},
		{Search: "o"},
		{Search: "a", FullText: true},
		{Types: []domain.MediaType{domain.MediaTypeAnime}},
		{Genres: []domain.Genre{domain.GenreFantasy, domain.GenreAction}, MinRating: ptr(7.0)},
		{Statuses: []domain.Status{domain.StatusOngoing}, Watchlist: ptr(false)},
	}
	for _, c := range criteria {
		once := Filter(fixture(), c)
		twice := Filter(once, c)
		assert.Equal(t, once, twice)
	}
}

func TestFilter_EmptyResultIsNotAnError(t *testing.T) {
	res := Apply(fixture(), Criteria{Search: "one piece"}, Sort{})
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.Matched)
	assert.Equal(t, 4, res.Total)
}

func TestApply_FiltersThenSorts(t *testing.T) {
	res := Apply(fixture(), Criteria{Statuses: []domain.Status{domain.StatusOngoing, domain.StatusLive}},
		Sort{Key: SortRating, Order: Descending})
	assert.Equal(t, []string{"solo", "tower", "bleach"}, ids(res.Items))
	assert.Equal(t, 3, res.Matched)
	assert.Equal(t, 4, res.Total)
}

func TestCriteria_IsZero(t *testing.T) {
	assert.True(t, Criteria{}.IsZero())
	assert.True(t, Criteria{FullText: true}.IsZero())
	assert.False(t, Criteria{Search: "x"}.IsZero())
	assert.False(t, Criteria{MinRating: ptr(0.0)}.IsZero())
}

func TestParseSort(t *testing.T) {
	key, err := ParseSortKey("Rating")
	require.NoError(t, err)
	assert.Equal(t, SortRating, key)

	key, err = ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortTitle, key)

	_, err = ParseSortKey("year")
	assert.Error(t, err)

	order, err := ParseSortOrder("descending")
	require.NoError(t, err)
	assert.Equal(t, Descending, order)
	assert.Equal(t, Ascending, order.Toggle())

	_, err = ParseSortOrder("sideways")
	assert.Error(t, err)
}

func TestSuggest(t *testing.T) {
	items := fixture()

	got := Suggest("narto", items, 3)
	require.NotEmpty(t, got)
	assert.Equal(t, "naruto", got[0].Item.ID)

	got = Suggest("bleech", items, 3)
	require.Len(t, got, 1)
	assert.Equal(t, "bleach", got[0].Item.ID)

	assert.Empty(t, Suggest("", items, 3))
	assert.Empty(t, Suggest("zzzzzzzz", items, 3))
	assert.Len(t, Suggest("o", items, 2), 2)
}
