package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/chronicle/internal/domain"
	"github.com/mmcdole/chronicle/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	// Handle modal states
	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateConfirmDelete:
		return m.renderConfirmation("Delete Item?",
			fmt.Sprintf("%q will be removed\nfrom your collection.", styles.Truncate(m.pendingDelete.Title, 30)))
	case StateConfirmClear:
		return m.renderConfirmation("Clear Collection?",
			fmt.Sprintf("All %d items will be deleted.\nExport first if you want a backup.", m.Queries.Count()))
	}

	layout := m.calculateColumnLayout(m.Width)

	content := m.List.View()
	if layout.inspectorWidth > 0 {
		content = lipgloss.JoinHorizontal(
			lipgloss.Top,
			content,
			m.Inspector.View(),
		)
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabs(),
		content,
		m.renderFooter(),
	)

	// Overlay the active modal, if any
	var modal string
	switch {
	case m.ItemForm.IsVisible():
		modal = m.ItemForm.View()
	case m.SortModal.IsVisible():
		modal = m.SortModal.View()
	case m.FilterModal.IsVisible():
		modal = m.FilterModal.View()
	case m.InputModal.IsVisible():
		modal = m.InputModal.View()
	}
	if modal != "" {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			modal)
	}

	return view
}

// renderTabs renders the view switcher and, on the watchlist, its status tabs
func (m Model) renderTabs() string {
	tab := func(label string, active bool) string {
		if active {
			return styles.ActiveTabStyle.Render(label)
		}
		return styles.InactiveTabStyle.Render(label)
	}

	parts := []string{
		tab("Collection", m.ActiveView == ViewCollection),
		tab("Watchlist", m.ActiveView == ViewWatchlist),
	}

	if m.ActiveView == ViewWatchlist {
		counts := m.Queries.WatchlistCounts()
		total := 0
		for _, n := range counts {
			total += n
		}

		parts = append(parts, styles.DimStyle.Render("│"))
		parts = append(parts, tab(fmt.Sprintf("All %d", total), m.WatchlistTab == 0))
		for i, status := range domain.AllWatchlistStatuses() {
			label := fmt.Sprintf("%s %d", status, counts[status])
			parts = append(parts, tab(label, m.WatchlistTab == i+1))
		}
	}

	line := strings.Join(parts, " ")
	return lipgloss.NewStyle().MaxWidth(m.Width).Render(line)
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Right side: "? help" hint
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")
	room := max(m.Width-lipgloss.Width(right)-1, 0)

	// Left side: status message, or the active criteria
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(styles.Truncate(m.StatusMsg, room))
	case m.StatusMsg != "":
		left = styles.SuccessStyle.Render(styles.Truncate(m.StatusMsg, room))
	default:
		left = styles.DimStyle.Render(styles.Truncate(m.criteriaSummary(), room))
	}

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// criteriaSummary describes the active search and filters
func (m Model) criteriaSummary() string {
	c := m.Criteria
	var parts []string
	if c.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", c.Search))
	}
	if q := m.List.FilterQuery(); q != "" {
		parts = append(parts, fmt.Sprintf("quick %q", q))
	}
	if len(c.Types) > 0 {
		parts = append(parts, joinNames("type", c.Types))
	}
	if len(c.Statuses) > 0 {
		parts = append(parts, joinNames("status", c.Statuses))
	}
	if len(c.Genres) > 0 {
		parts = append(parts, joinNames("genre", c.Genres))
	}
	if c.MinRating != nil || c.MaxRating != nil {
		lo, hi := 0.0, 10.0
		if c.MinRating != nil {
			lo = *c.MinRating
		}
		if c.MaxRating != nil {
			hi = *c.MaxRating
		}
		parts = append(parts, fmt.Sprintf("rating %g-%g", lo, hi))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Filtered by " + strings.Join(parts, " · ") + "  (esc clears)"
}

func joinNames[T ~string](label string, values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return label + " " + strings.Join(names, "|")
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      WATCHLIST
  j/k        Up/down               w      Add/remove
  g/G        First/last item       c      Cycle status
  Ctrl+u/d   Half page             r      Remove
  tab        Collection/watchlist
  h/l        Watchlist tabs        ITEMS
  J/K        Scroll info           a      Add
                                   e      Edit
SEARCH & VIEW                      d      Delete
  /          Quick filter
  f          Full-text search      DATA
  F          Filter                x      Export CSV
  s          Sort                  I      Import CSV
  i          Toggle info           C      Clear all
  Esc        Clear filters
                                   q      Quit

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// renderConfirmation renders a yes/no confirmation modal
func (m Model) renderConfirmation(title, body string) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.ModalTitleStyle.Render(title),
		body,
		"",
		"[Y] Yes      [N] No",
	)

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(content))
}
