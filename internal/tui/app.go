package tui

import (
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/chronicle/internal/catalog"
	"github.com/mmcdole/chronicle/internal/domain"
	"github.com/mmcdole/chronicle/internal/form"
	"github.com/mmcdole/chronicle/internal/query"
	"github.com/mmcdole/chronicle/internal/transfer"
	"github.com/mmcdole/chronicle/internal/tui/components"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmDelete
	StateConfirmClear
)

// ViewKind selects which slice of the collection is listed
type ViewKind int

const (
	ViewCollection ViewKind = iota
	ViewWatchlist
)

// Preference keys
const (
	PrefSort = "sort" // last chosen sort
	PrefView = "view" // last view and watchlist tab
)

// viewPref is the stored form of the active view
type viewPref struct {
	View ViewKind `json:"view"`
	Tab  int      `json:"tab"`
}

// Preferences stores small UI choices between sessions
type Preferences interface {
	GetPreference(key string, dest any) bool
	SavePreference(key string, value any) error
}

// Options wires the TUI to the application services
type Options struct {
	Collection *catalog.Collection
	Transfer   *transfer.Service
	Prefs      Preferences // optional

	// Sort is used when no sort preference has been saved
	Sort          query.Sort
	ShowInspector bool
	ExportDir     string
	Logger        *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Collection *catalog.Collection
	Queries    *catalog.Queries
	Transfer   *transfer.Service
	Prefs      Preferences
	logger     *slog.Logger

	// UI Components
	List        *components.ItemList
	Inspector   components.Inspector
	SortModal   components.SortModal
	FilterModal components.FilterModal
	InputModal  components.InputModal
	ItemForm    components.ItemForm

	// What is listed
	ActiveView   ViewKind
	WatchlistTab int // 0 = all, then one tab per watchlist status
	Sort         query.Sort
	Criteria     query.Criteria
	Matched      int
	Total        int

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg     string
	StatusIsErr   bool
	ShowInspector bool
	ExportDir     string

	pendingDelete domain.MediaItem
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := Model{
		State:         StateBrowsing,
		Collection:    opts.Collection,
		Queries:       catalog.NewQueries(opts.Collection),
		Transfer:      opts.Transfer,
		Prefs:         opts.Prefs,
		logger:        logger,
		List:          components.NewItemList("Collection"),
		Inspector:     components.NewInspector(),
		SortModal:     components.NewSortModal(),
		FilterModal:   components.NewFilterModal(),
		InputModal:    components.NewInputModal(),
		ItemForm:      components.NewItemForm(),
		Sort:          opts.Sort,
		ShowInspector: opts.ShowInspector,
		ExportDir:     opts.ExportDir,
	}

	if m.Prefs != nil {
		var saved query.Sort
		if m.Prefs.GetPreference(PrefSort, &saved) && saved.Key != "" {
			m.Sort = saved
		}
		var view viewPref
		if m.Prefs.GetPreference(PrefView, &view) {
			m.restoreView(view)
		}
	}

	m.refresh()
	return m
}

// Run starts the full-screen TUI and blocks until the user quits
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case ImportReadMsg:
		added, err := m.Collection.ImportMany(msg.Items)
		m.refresh()
		if err != nil {
			return m, m.setError("Import failed", err)
		}
		return m, m.setStatus(fmt.Sprintf("Imported %d %s", added, plural(added, "item", "items")))

	case ExportDoneMsg:
		return m, m.setStatus(fmt.Sprintf("Exported %d %s to %s", msg.Count, plural(msg.Count, "item", "items"), msg.Path))

	case ErrMsg:
		return m, m.setError(msg.Context, msg.Err)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Forward anything else (cursor blink) to the focused input
	var cmd tea.Cmd
	switch {
	case m.ItemForm.IsVisible():
		m.ItemForm, cmd, _ = m.ItemForm.Update(msg)
	case m.InputModal.IsVisible():
		m.InputModal, cmd, _ = m.InputModal.Update(msg)
	}
	return m, cmd
}

// effectiveCriteria adds the active view and tab to the user's criteria
func (m Model) effectiveCriteria() query.Criteria {
	c := m.Criteria
	if m.ActiveView == ViewWatchlist {
		on := true
		c.Watchlist = &on
		if m.WatchlistTab > 0 {
			status := domain.AllWatchlistStatuses()[m.WatchlistTab-1]
			c.WatchlistStatus = &status
		}
	}
	return c
}

// refresh re-runs the query and pushes the result into the list
func (m *Model) refresh() {
	all := m.Queries.All()
	res := query.Apply(all, m.effectiveCriteria(), m.Sort)
	m.Matched = res.Matched
	m.Total = res.Total

	m.List.SetItems(res.Items)
	m.List.SetTitle(m.listTitle())
	m.List.SetEmptyMessage(m.emptyMessage(all))
	m.updateInspector()
}

func (m Model) listTitle() string {
	name := "Collection"
	if m.ActiveView == ViewWatchlist {
		name = "Watchlist"
	}
	arrow := "↑"
	if m.Sort.Order == query.Descending {
		arrow = "↓"
	}
	return fmt.Sprintf("%s · %d of %d · %s %s", name, m.Matched, m.Total, m.Sort.Key.String(), arrow)
}

func (m Model) emptyMessage(all []domain.MediaItem) string {
	if len(all) == 0 {
		return "No items yet. Press a to add or I to import a CSV."
	}
	if m.Criteria.Search != "" {
		if s := query.Suggest(m.Criteria.Search, all, 1); len(s) > 0 {
			return fmt.Sprintf("No matches. Did you mean %q?", s[0].Item.Title)
		}
	}
	if m.ActiveView == ViewWatchlist && m.Criteria.IsZero() {
		return "Nothing here. Press w on an item to add it to your watchlist."
	}
	return "No items match the current filters"
}

// updateInspector points the inspector at the selected item
func (m *Model) updateInspector() {
	if item, ok := m.List.SelectedItem(); ok {
		m.Inspector.SetItem(&item)
		return
	}
	m.Inspector.SetItem(nil)
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.StatusMsg = msg
	m.StatusIsErr = false
	return ClearStatusCmd(StatusTimeout)
}

func (m *Model) setError(context string, err error) tea.Cmd {
	m.logger.Error("tui action failed", "action", context, "error", err)
	m.StatusMsg = context + ": " + userMessage(err)
	m.StatusIsErr = true
	return ClearStatusCmd(ErrorStatusTimeout)
}

// userMessage strips wrapping from the well-known failures
func userMessage(err error) string {
	for _, known := range []error{
		domain.ErrNotCSV,
		domain.ErrEmptyImport,
		domain.ErrNothingToExport,
		domain.ErrItemNotFound,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return err.Error()
}

// submitForm validates the form and adds or updates the item
func (m Model) submitForm() (Model, tea.Cmd) {
	in := m.ItemForm.Input()
	if err := form.Validate(in); err != nil {
		m.ItemForm.SetError(err.Error())
		return m, nil
	}

	id := m.ItemForm.EditID()
	if id == "" {
		added, err := m.Collection.Add(in.Item())
		m.ItemForm.Hide()
		m.refresh()
		if err != nil {
			return m, m.setError("Save failed", err)
		}
		m.List.SelectID(added.ID)
		m.updateInspector()
		return m, m.setStatus("Added " + added.Title)
	}

	found, err := m.Collection.Update(id, in.Patch())
	m.ItemForm.Hide()
	m.refresh()
	switch {
	case err != nil:
		return m, m.setError("Save failed", err)
	case !found:
		return m, m.setError("Save failed", domain.ErrItemNotFound)
	}
	return m, m.setStatus("Saved " + in.Item().Title)
}

// applySort switches the sort and remembers it
func (m *Model) applySort(s query.Sort) tea.Cmd {
	m.Sort = s
	m.refresh()
	if m.Prefs == nil {
		return nil
	}
	if err := m.Prefs.SavePreference(PrefSort, s); err != nil {
		return m.setError("Saving sort failed", err)
	}
	return nil
}

func (m *Model) restoreView(v viewPref) {
	if v.View != ViewWatchlist {
		return
	}
	m.ActiveView = ViewWatchlist
	if v.Tab > 0 && v.Tab <= len(domain.AllWatchlistStatuses()) {
		m.WatchlistTab = v.Tab
	}
}

// saveView remembers the active view and tab
func (m *Model) saveView() tea.Cmd {
	if m.Prefs == nil {
		return nil
	}
	v := viewPref{View: m.ActiveView, Tab: m.WatchlistTab}
	if err := m.Prefs.SavePreference(PrefView, v); err != nil {
		return m.setError("Saving view failed", err)
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
