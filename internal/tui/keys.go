package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	SwitchView key.Binding
	PrevTab    key.Binding
	NextTab    key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding

	// Actions
	Quit            key.Binding
	Help            key.Binding
	Escape          key.Binding
	Filter          key.Binding
	Search          key.Binding
	AdvancedFilter  key.Binding
	Sort            key.Binding
	ToggleInspector key.Binding
	Add             key.Binding
	Edit            key.Binding
	ToggleWatchlist key.Binding
	CycleStatus     key.Binding
	RemoveWatchlist key.Binding
	Delete          key.Binding
	Export          key.Binding
	Import          key.Binding
	ClearAll        key.Binding

	// Confirmations
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		SwitchView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "collection/watchlist"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("h", "left", "["),
			key.WithHelp("h/←", "previous tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("l", "right", "]"),
			key.WithHelp("l/→", "next tab"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "scroll info up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "scroll info down"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "quick filter"),
		),
		Search: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "search"),
		),
		AdvancedFilter: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		ToggleInspector: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle info"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		ToggleWatchlist: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle watchlist"),
		),
		CycleStatus: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cycle watchlist status"),
		),
		RemoveWatchlist: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "remove from watchlist"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export CSV"),
		),
		Import: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "import CSV"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear all"),
		),

		// Confirmations
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

// Keys is the global keymap instance
var Keys = DefaultKeyMap()
