package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/chronicle/internal/domain"
	"github.com/mmcdole/chronicle/internal/query"
	"github.com/mmcdole/chronicle/internal/tui/styles"
)

type filterRowKind int

const (
	rowType filterRowKind = iota
	rowStatus
	rowGenre
	rowMinRating
	rowMaxRating
)

const ratingStep = 0.5

type filterRow struct {
	kind  filterRowKind
	value string
}

func (r filterRow) key() string {
	return fmt.Sprintf("%d:%s", r.kind, r.value)
}

// FilterModal is the advanced filter: checkbox sets for type, status and
// genre plus an inclusive rating range.
type FilterModal struct {
	visible bool
	base    query.Criteria // carried through untouched (search, watchlist)
	rows    []filterRow
	checked map[string]bool
	cursor  int

	minRating float64
	maxRating float64

	width  int
	height int
}

// NewFilterModal creates a filter modal listing every option
func NewFilterModal() FilterModal {
	var rows []filterRow
	for _, t := range domain.AllMediaTypes() {
		rows = append(rows, filterRow{kind: rowType, value: string(t)})
	}
	for _, s := range domain.AllStatuses() {
		rows = append(rows, filterRow{kind: rowStatus, value: string(s)})
	}
	for _, g := range domain.AllGenres() {
		rows = append(rows, filterRow{kind: rowGenre, value: string(g)})
	}
	rows = append(rows, filterRow{kind: rowMinRating}, filterRow{kind: rowMaxRating})

	return FilterModal{
		rows:      rows,
		checked:   make(map[string]bool),
		maxRating: 10,
	}
}

// Show displays the modal seeded from the current criteria
func (m *FilterModal) Show(c query.Criteria) {
	m.visible = true
	m.base = c
	m.cursor = 0
	m.checked = make(map[string]bool)
	for _, t := range c.Types {
		m.checked[filterRow{kind: rowType, value: string(t)}.key()] = true
	}
	for _, s := range c.Statuses {
		m.checked[filterRow{kind: rowStatus, value: string(s)}.key()] = true
	}
	for _, g := range c.Genres {
		m.checked[filterRow{kind: rowGenre, value: string(g)}.key()] = true
	}
	m.minRating, m.maxRating = 0, 10
	if c.MinRating != nil {
		m.minRating = *c.MinRating
	}
	if c.MaxRating != nil {
		m.maxRating = *c.MaxRating
	}
}

// Hide dismisses the modal
func (m *FilterModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m FilterModal) IsVisible() bool {
	return m.visible
}

// SetSize sets the available screen size
func (m *FilterModal) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Criteria returns the criteria currently selected in the modal
func (m FilterModal) Criteria() query.Criteria {
	c := m.base
	c.Types, c.Statuses, c.Genres = nil, nil, nil
	c.MinRating, c.MaxRating = nil, nil

	for _, row := range m.rows {
		if !m.checked[row.key()] {
			continue
		}
		switch row.kind {
		case rowType:
			c.Types = append(c.Types, domain.MediaType(row.value))
		case rowStatus:
			c.Statuses = append(c.Statuses, domain.Status(row.value))
		case rowGenre:
			c.Genres = append(c.Genres, domain.Genre(row.value))
		}
	}
	if m.minRating > 0 {
		lo := m.minRating
		c.MinRating = &lo
	}
	if m.maxRating < 10 {
		hi := m.maxRating
		c.MaxRating = &hi
	}
	return c
}

// HandleKeyMsg processes a key message, returns (handled, applied).
// applied is non-nil when the user confirmed the selection.
func (m *FilterModal) HandleKeyMsg(msg tea.KeyMsg) (handled bool, applied *query.Criteria) {
	if !m.visible {
		return false, nil
	}

	row := m.rows[m.cursor]
	switch {
	case key.Matches(msg, ChecklistKeys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, ChecklistKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, ChecklistKeys.Toggle):
		if row.kind != rowMinRating && row.kind != rowMaxRating {
			m.checked[row.key()] = !m.checked[row.key()]
		}
	case key.Matches(msg, ChecklistKeys.Lower):
		m.adjustRating(row.kind, -ratingStep)
	case key.Matches(msg, ChecklistKeys.Raise):
		m.adjustRating(row.kind, ratingStep)
	case key.Matches(msg, ChecklistKeys.Reset):
		m.checked = make(map[string]bool)
		m.minRating, m.maxRating = 0, 10
	case key.Matches(msg, ChecklistKeys.Apply):
		c := m.Criteria()
		m.visible = false
		return true, &c
	case key.Matches(msg, ChecklistKeys.Escape):
		m.visible = false
	}

	return true, nil // consume all keys when visible
}

// adjustRating moves a bound by delta, keeping 0 <= min <= max <= 10
func (m *FilterModal) adjustRating(kind filterRowKind, delta float64) {
	switch kind {
	case rowMinRating:
		m.minRating = clampRating(m.minRating+delta, 0, m.maxRating)
	case rowMaxRating:
		m.maxRating = clampRating(m.maxRating+delta, m.minRating, 10)
	}
}

func clampRating(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// View renders the filter modal
func (m FilterModal) View() string {
	if !m.visible {
		return ""
	}

	modalWidth := 40
	if m.width > 0 && m.width < 60 {
		modalWidth = m.width - 10
	}
	lineWidth := modalWidth - 6

	lines := []string{styles.ModalTitleStyle.Render("Filter")}

	// Only the cursor neighbourhood fits on short screens
	visibleRows := len(m.rows)
	if m.height > 0 {
		if avail := m.height - 14; avail < visibleRows {
			visibleRows = max(avail, 5)
		}
	}
	start := 0
	if m.cursor >= visibleRows {
		start = m.cursor - visibleRows + 1
	}
	end := min(start+visibleRows, len(m.rows))

	prevKind := filterRowKind(-1)
	if start > 0 {
		prevKind = m.rows[start-1].kind
		lines = append(lines, styles.DimStyle.Render("  ↑ more"))
	}
	for i := start; i < end; i++ {
		row := m.rows[i]
		if row.kind != prevKind && row.kind != rowMaxRating {
			lines = append(lines, "", styles.AccentStyle.Render(sectionTitle(row.kind)))
		}
		prevKind = row.kind

		text := m.rowText(row)
		style := lipgloss.NewStyle().Foreground(styles.LightGray)
		switch {
		case i == m.cursor:
			style = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight)
		case m.checked[row.key()]:
			style = lipgloss.NewStyle().Foreground(styles.Sakura)
		}
		lines = append(lines, "  "+style.Render(styles.Pad(text, lineWidth)))
	}
	if end < len(m.rows) {
		lines = append(lines, styles.DimStyle.Render("  ↓ more"))
	}

	lines = append(lines, "", styles.DimStyle.Render("Space: Toggle  h/l: Rating  r: Reset"))
	lines = append(lines, styles.DimStyle.Render("Enter: Apply  Esc: Cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Sakura).
		Background(styles.SlateDark).
		Padding(1, 2).
		Width(modalWidth).
		Render(strings.Join(lines, "\n"))
}

func (m FilterModal) rowText(row filterRow) string {
	switch row.kind {
	case rowMinRating:
		return fmt.Sprintf("Min  ◂ %4.1f ▸", m.minRating)
	case rowMaxRating:
		return fmt.Sprintf("Max  ◂ %4.1f ▸", m.maxRating)
	}
	checkbox := "[ ]"
	if m.checked[row.key()] {
		checkbox = "[x]"
	}
	return checkbox + " " + row.value
}

func sectionTitle(kind filterRowKind) string {
	switch kind {
	case rowType:
		return "Type"
	case rowStatus:
		return "Status"
	case rowGenre:
		return "Genres (any)"
	default:
		return "Rating"
	}
}
