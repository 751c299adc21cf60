package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/chronicle/internal/query"
	"github.com/mmcdole/chronicle/internal/tui/styles"
)

// DefaultDirection returns the direction a newly chosen sort key starts in
func DefaultDirection(k query.SortKey) query.SortOrder {
	if k == query.SortRating {
		return query.Descending // best first
	}
	return query.Ascending // A-Z
}

// SortModal is a small popup for choosing sort order
type SortModal struct {
	visible bool
	options []query.SortKey
	cursor  int
	active  query.Sort
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{options: query.SortKeys()}
}

// Show displays the modal with the cursor on the active key
func (m *SortModal) Show(active query.Sort) {
	m.visible = true
	m.active = active
	if m.active.Key == "" {
		m.active.Key = query.SortTitle
	}
	if m.active.Order == "" {
		m.active.Order = query.Ascending
	}
	m.cursor = 0
	for i, opt := range m.options {
		if opt == m.active.Key {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice. Choosing the
// active key again flips its direction.
func (m *SortModal) HandleKey(key string) (handled bool, selection *query.Sort) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
		return true, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return true, nil
	case "enter":
		chosen := m.options[m.cursor]
		order := DefaultDirection(chosen)
		if chosen == m.active.Key {
			order = m.active.Order.Toggle()
		}
		m.visible = false
		return true, &query.Sort{Key: chosen, Order: order}
	case "esc", "s":
		m.visible = false
		return true, nil
	}

	return true, nil // consume all keys when visible
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	var lines []string
	for i, opt := range m.options {
		selected := i == m.cursor
		isActive := opt == m.active.Key

		prefix := "  "
		suffix := ""
		if isActive {
			prefix = "✓ "
			if m.active.Order == query.Descending {
				suffix = " ↓"
			} else {
				suffix = " ↑"
			}
		}
		text := styles.Pad(prefix+opt.String()+suffix, 20)

		style := lipgloss.NewStyle().Foreground(styles.LightGray)
		switch {
		case selected:
			style = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight)
		case isActive:
			style = lipgloss.NewStyle().Foreground(styles.Sakura)
		}
		lines = append(lines, style.Render(text))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Sakura).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Sort by") + "\n" + strings.Join(lines, "\n"))
}
