package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/chronicle/internal/domain"
	"github.com/mmcdole/chronicle/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleItems() []domain.MediaItem {
	return []domain.MediaItem{
		{ID: "1", Title: "Bleach", Rating: 7.5},
		{ID: "2", Title: "Naruto", Rating: 8},
		{ID: "3", Title: "Solo Leveling", Rating: 9.5, InWatchlist: true, WatchlistStatus: domain.WatchlistCurrent},
	}
}

func TestSortModal(t *testing.T) {
	tests := []struct {
		name   string
		active query.Sort
		keys   []string
		want   query.Sort
	}{
		{
			name: "zero sort starts on title and flips it",
			keys: []string{"enter"},
			want: query.Sort{Key: query.SortTitle, Order: query.Descending},
		},
		{
			name:   "rating starts descending",
			active: query.Sort{Key: query.SortTitle, Order: query.Ascending},
			keys:   []string{"j", "enter"},
			want:   query.Sort{Key: query.SortRating, Order: query.Descending},
		},
		{
			name:   "status starts ascending",
			active: query.Sort{Key: query.SortRating, Order: query.Descending},
			keys:   []string{"down", "enter"},
			want:   query.Sort{Key: query.SortStatus, Order: query.Ascending},
		},
		{
			name:   "cursor stops at the ends",
			active: query.Sort{Key: query.SortTitle, Order: query.Ascending},
			keys:   []string{"k", "k", "j", "j", "j", "j", "enter"},
			want:   query.Sort{Key: query.SortStatus, Order: query.Ascending},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSortModal()
			m.Show(tt.active)

			var got *query.Sort
			for _, k := range tt.keys {
				handled, sel := m.HandleKey(k)
				assert.True(t, handled)
				if sel != nil {
					got = sel
				}
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
			assert.False(t, m.IsVisible())
		})
	}
}

func TestSortModal_Cancel(t *testing.T) {
	m := NewSortModal()
	m.Show(query.Sort{})

	handled, sel := m.HandleKey("esc")
	assert.True(t, handled)
	assert.Nil(t, sel)
	assert.False(t, m.IsVisible())

	handled, _ = m.HandleKey("j")
	assert.False(t, handled, "hidden modal ignores keys")
}

func TestFilterModal_SeedsAndApplies(t *testing.T) {
	lo := 5.0
	m := NewFilterModal()
	m.Show(query.Criteria{
		Search:    "keep",
		Genres:    []domain.Genre{domain.GenreAction},
		MinRating: &lo,
	})

	// Manhwa is the second row
	m.HandleKeyMsg(tea.KeyMsg{Type: tea.KeyDown})
	m.HandleKeyMsg(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	handled, applied := m.HandleKeyMsg(tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, handled)
	require.NotNil(t, applied)
	assert.Equal(t, "keep", applied.Search)
	assert.Equal(t, []domain.MediaType{domain.MediaTypeManhwa}, applied.Types)
	assert.Equal(t, []domain.Genre{domain.GenreAction}, applied.Genres)
	require.NotNil(t, applied.MinRating)
	assert.Equal(t, 5.0, *applied.MinRating)
	assert.Nil(t, applied.MaxRating)
	assert.False(t, m.IsVisible())
}

func TestFilterModal_RatingBounds(t *testing.T) {
	m := NewFilterModal()
	m.Show(query.Criteria{})

	// Jump to the max rating row, the last one
	for k, n := 0, len(m.rows); k < n; k++ {
		m.HandleKeyMsg(runes("j"))
	}
	for k := 0; k < 30; k++ {
		m.HandleKeyMsg(runes("-"))
	}
	c := m.Criteria()
	require.NotNil(t, c.MaxRating)
	assert.Equal(t, 0.0, *c.MaxRating)

	// Min can not pass max
	m.HandleKeyMsg(runes("k"))
	m.HandleKeyMsg(runes("+"))
	assert.Nil(t, m.Criteria().MinRating)

	m.HandleKeyMsg(runes("r"))
	assert.True(t, m.Criteria().IsZero())
}

func TestItemList_QuickFilter(t *testing.T) {
	l := NewItemList("Collection")
	l.SetSize(60, 20)
	l.SetItems(sampleItems())
	require.Equal(t, 3, l.ItemCount())

	l.ToggleFilter()
	l.Update(runes("nar"))
	assert.True(t, l.IsFilterTyping())
	assert.Equal(t, "nar", l.FilterQuery())
	require.Equal(t, 1, l.ItemCount())
	item, ok := l.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, "Naruto", item.Title)

	// Enter keeps the filter but hands keys back to navigation
	l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, l.IsFiltering())
	assert.False(t, l.IsFilterTyping())

	l.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, l.IsFiltering())
	assert.Equal(t, 3, l.ItemCount())
}

func TestItemList_SetItemsKeepsSelection(t *testing.T) {
	l := NewItemList("Collection")
	l.SetSize(60, 20)
	l.SetItems(sampleItems())

	l.Update(runes("j"))
	l.Update(runes("j"))
	item, _ := l.SelectedItem()
	require.Equal(t, "3", item.ID)

	// Reordered
	items := sampleItems()
	items[0], items[2] = items[2], items[0]
	l.SetItems(items)
	assert.Equal(t, 0, l.SelectedIndex())

	// Selected item gone: cursor clamps
	l.SetItems(items[1:])
	item, ok := l.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, "2", item.ID)

	l.SetItems(nil)
	_, ok = l.SelectedItem()
	assert.False(t, ok)
	assert.Contains(t, l.View(), "No items")
}

func TestItemForm_Input(t *testing.T) {
	f := NewItemForm()
	f.ShowEdit(domain.MediaItem{
		ID:     "x",
		Title:  "Monster",
		Type:   domain.MediaTypeAnime,
		Genres: []domain.Genre{domain.GenreMystery},
		Rating: 9,
		Status: domain.StatusEnded,
	})
	assert.Equal(t, "x", f.EditID())

	in := f.Input()
	assert.Equal(t, "Monster", in.Title)
	assert.Equal(t, 9.0, in.Rating)
	assert.Equal(t, []domain.Genre{domain.GenreMystery}, in.Genres)

	// Status row: cycle backwards from Ended
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, domain.StatusOngoing, f.Input().Status)

	// Rating row takes text; garbage reads as out of range
	for k := 0; k < 2; k++ {
		f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	f, _, _ = f.Update(runes("x"))
	assert.Equal(t, -1.0, f.Input().Rating)

	f, _, result := f.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, FormSubmitted, result)

	_, _, result = f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, FormCancelled, result)
}

func TestItemForm_GenreGrid(t *testing.T) {
	f := NewItemForm()
	f.ShowAdd()
	assert.Empty(t, f.EditID())

	for k := 0; k < 3; k++ {
		f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	f, _, _ = f.Update(space)
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyRight})
	f, _, _ = f.Update(space)
	f, _, _ = f.Update(space)
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	f, _, _ = f.Update(space)

	all := domain.AllGenres()
	assert.Equal(t, []domain.Genre{all[0], all[len(all)-1]}, f.Input().Genres)
}

func TestInspector(t *testing.T) {
	i := NewInspector()
	i.SetSize(40, 20)
	assert.False(t, i.HasItem())
	assert.Contains(t, i.View(), "Nothing selected")

	item := sampleItems()[2]
	item.Description = "hunter"
	i.SetItem(&item)
	view := i.View()
	assert.Contains(t, view, "Solo Leveling")
	assert.Contains(t, view, "Currently Watching")
	assert.Contains(t, view, "hunter")
}

func TestInputModal(t *testing.T) {
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	m := NewInputModal()
	m.Show(InputImportPath, "Import CSV file", "path", "")
	require.True(t, m.IsVisible())

	m, _, submitted := m.Update(enter)
	assert.False(t, submitted, "an import needs a path")

	m, _, _ = m.Update(runes("  backup.csv "))
	m, _, submitted = m.Update(enter)
	assert.True(t, submitted)
	assert.Equal(t, "backup.csv", m.Value())
	assert.Equal(t, InputImportPath, m.Purpose())

	m.Show(InputSearch, "Search", "", "naruto")
	assert.Equal(t, "naruto", m.Value())
	for range "naruto" {
		m, _, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m, _, submitted = m.Update(enter)
	assert.True(t, submitted, "an empty search clears it")

	m, _, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.IsVisible())
}
