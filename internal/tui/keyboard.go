package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/chronicle/internal/domain"
	"github.com/mmcdole/chronicle/internal/query"
	"github.com/mmcdole/chronicle/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil

	case StateConfirmDelete:
		m.State = StateBrowsing
		if key.Matches(msg, Keys.Confirm) {
			return m.deletePending()
		}
		return m, nil

	case StateConfirmClear:
		m.State = StateBrowsing
		if key.Matches(msg, Keys.Confirm) {
			err := m.Collection.ClearAll()
			m.refresh()
			if err != nil {
				return m, m.setError("Clear failed", err)
			}
			return m, m.setStatus("Collection cleared")
		}
		return m, nil
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// The quick filter owns the keyboard while typing
	if m.List.IsFilterTyping() {
		cmd := m.List.Update(msg)
		m.updateInspector()
		return m, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		// Quick filter first, then search and filters
		if m.List.IsFiltering() {
			m.List.ClearFilter()
			m.updateInspector()
			return m, nil
		}
		if !m.Criteria.IsZero() {
			m.Criteria = query.Criteria{}
			m.refresh()
			return m, m.setStatus("Filters cleared")
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		m.List.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.InputModal.Show(components.InputSearch, "Search titles, descriptions and genres", "search...", m.Criteria.Search)
		return m, nil

	case key.Matches(msg, Keys.AdvancedFilter):
		m.FilterModal.SetSize(m.Width, m.Height)
		m.FilterModal.Show(m.Criteria)
		return m, nil

	case key.Matches(msg, Keys.Sort):
		m.SortModal.Show(m.Sort)
		return m, nil

	case key.Matches(msg, Keys.ToggleInspector):
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.SwitchView):
		if m.ActiveView == ViewCollection {
			m.ActiveView = ViewWatchlist
		} else {
			m.ActiveView = ViewCollection
		}
		m.refresh()
		return m, m.saveView()

	case key.Matches(msg, Keys.PrevTab):
		if m.ActiveView == ViewWatchlist {
			tabs := len(domain.AllWatchlistStatuses()) + 1
			m.WatchlistTab = (m.WatchlistTab + tabs - 1) % tabs
			m.refresh()
			return m, m.saveView()
		}
		return m, nil

	case key.Matches(msg, Keys.NextTab):
		if m.ActiveView == ViewWatchlist {
			tabs := len(domain.AllWatchlistStatuses()) + 1
			m.WatchlistTab = (m.WatchlistTab + 1) % tabs
			m.refresh()
			return m, m.saveView()
		}
		return m, nil

	case key.Matches(msg, Keys.ScrollDown):
		m.Inspector.ScrollDown()
		return m, nil

	case key.Matches(msg, Keys.ScrollUp):
		m.Inspector.ScrollUp()
		return m, nil

	case key.Matches(msg, Keys.Add):
		m.ItemForm.ShowAdd()
		return m, nil

	case key.Matches(msg, Keys.Edit):
		if item, ok := m.List.SelectedItem(); ok {
			m.ItemForm.ShowEdit(item)
		}
		return m, nil

	case key.Matches(msg, Keys.ToggleWatchlist):
		return m.mutateSelected("Watchlist update failed", func(item domain.MediaItem) (bool, error) {
			return m.Collection.ToggleWatchlist(item.ID)
		}, func(item domain.MediaItem) string {
			if item.InWatchlist {
				return "Removed " + item.Title + " from watchlist"
			}
			return "Added " + item.Title + " to watchlist"
		})

	case key.Matches(msg, Keys.CycleStatus):
		return m.mutateSelected("Watchlist update failed", func(item domain.MediaItem) (bool, error) {
			return m.Collection.SetWatchlistStatus(item.ID, nextStatus(item))
		}, func(item domain.MediaItem) string {
			return fmt.Sprintf("%s: %s", item.Title, displayStatus(nextStatus(item)))
		})

	case key.Matches(msg, Keys.RemoveWatchlist):
		item, ok := m.List.SelectedItem()
		if !ok || !item.InWatchlist {
			return m, nil
		}
		return m.mutateSelected("Watchlist update failed", func(item domain.MediaItem) (bool, error) {
			return m.Collection.RemoveFromWatchlist(item.ID)
		}, func(item domain.MediaItem) string {
			return "Removed " + item.Title + " from watchlist"
		})

	case key.Matches(msg, Keys.Delete):
		if item, ok := m.List.SelectedItem(); ok {
			m.pendingDelete = item
			m.State = StateConfirmDelete
		}
		return m, nil

	case key.Matches(msg, Keys.Export):
		items := m.Queries.All()
		if len(items) == 0 {
			return m, m.setError("Export failed", domain.ErrNothingToExport)
		}
		return m, ExportCmd(m.Transfer, m.ExportDir, items)

	case key.Matches(msg, Keys.Import):
		m.InputModal.Show(components.InputImportPath, "Import CSV file", "path/to/backup.csv", "")
		return m, nil

	case key.Matches(msg, Keys.ClearAll):
		if m.Queries.Count() > 0 {
			m.State = StateConfirmClear
		}
		return m, nil
	}

	// Everything else moves the list cursor
	cmd := m.List.Update(msg)
	m.updateInspector()
	return m, cmd
}

// routeToModal routes key messages to the active modal.
// Returns (handled, model, cmd) - if handled is false, continue with normal key handling.
func (m Model) routeToModal(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if m.ItemForm.IsVisible() {
		var cmd tea.Cmd
		var result components.FormResult
		m.ItemForm, cmd, result = m.ItemForm.Update(msg)
		if result == components.FormSubmitted {
			m, cmd = m.submitForm()
		}
		return true, m, cmd
	}

	if m.SortModal.IsVisible() {
		handled, selection := m.SortModal.HandleKey(msg.String())
		if selection != nil {
			return true, m, m.applySort(*selection)
		}
		return handled, m, nil
	}

	if m.FilterModal.IsVisible() {
		handled, applied := m.FilterModal.HandleKeyMsg(msg)
		if applied != nil {
			m.Criteria = *applied
			m.refresh()
		}
		return handled, m, nil
	}

	if m.InputModal.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.InputModal, cmd, submitted = m.InputModal.Update(msg)
		if submitted {
			value := strings.TrimSpace(m.InputModal.Value())
			m.InputModal.Hide()
			switch m.InputModal.Purpose() {
			case components.InputSearch:
				m.Criteria.Search = value
				m.Criteria.FullText = value != ""
				m.refresh()
			case components.InputImportPath:
				if value == "" {
					return true, m, nil
				}
				return true, m, ReadImportCmd(m.Transfer, value)
			}
		}
		return true, m, cmd
	}

	return false, m, nil
}

// mutateSelected runs fn on the selected item and reports the outcome.
// status describes the change using the item as it was before.
func (m Model) mutateSelected(action string, fn func(domain.MediaItem) (bool, error), status func(domain.MediaItem) string) (tea.Model, tea.Cmd) {
	item, ok := m.List.SelectedItem()
	if !ok {
		return m, nil
	}

	found, err := fn(item)
	m.refresh()
	switch {
	case err != nil:
		return m, m.setError(action, err)
	case !found:
		return m, m.setError(action, domain.ErrItemNotFound)
	}
	return m, m.setStatus(status(item))
}

func (m Model) deletePending() (tea.Model, tea.Cmd) {
	item := m.pendingDelete
	m.pendingDelete = domain.MediaItem{}

	_, err := m.Collection.Delete(item.ID)
	m.refresh()
	if err != nil {
		return m, m.setError("Delete failed", err)
	}
	return m, m.setStatus("Deleted " + item.Title)
}

// nextStatus is the watchlist status the cycle key moves to
func nextStatus(item domain.MediaItem) domain.WatchlistStatus {
	if !item.InWatchlist {
		return domain.WatchlistPlanning
	}
	return domain.NextWatchlistStatus(item.WatchlistStatus)
}

func displayStatus(s domain.WatchlistStatus) string {
	return domain.MediaItem{InWatchlist: true, WatchlistStatus: s}.WatchlistLabel()
}
