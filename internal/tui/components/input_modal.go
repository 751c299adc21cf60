package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/chronicle/internal/tui/styles"
)

// InputPurpose tells the caller what a submitted value is for
type InputPurpose int

const (
	InputSearch InputPurpose = iota
	InputImportPath
)

// hint is the line under the prompt
func (p InputPurpose) hint() string {
	switch p {
	case InputImportPath:
		return "enter import · esc cancel · items are appended"
	default:
		return "enter search · empty clears · esc cancel"
	}
}

// allowsEmpty reports whether an empty value may be submitted
func (p InputPurpose) allowsEmpty() bool {
	return p == InputSearch
}

const promptWidth = 46

// InputModal is a one-line prompt for a search term or a file path
type InputModal struct {
	visible bool
	purpose InputPurpose
	title   string
	input   textinput.Model
}

// NewInputModal creates a hidden prompt
func NewInputModal() InputModal {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Width = promptWidth - 2
	ti.Prompt = "› "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	return InputModal{input: ti}
}

// Show opens the prompt for purpose, prefilled with value
func (m *InputModal) Show(purpose InputPurpose, title, placeholder, value string) {
	m.purpose = purpose
	m.title = title
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	m.visible = true
}

func (m *InputModal) Hide() {
	m.input.Blur()
	m.visible = false
}

func (m InputModal) IsVisible() bool { return m.visible }

func (m InputModal) Purpose() InputPurpose { return m.purpose }

// Value returns the entered text without surrounding blanks
func (m InputModal) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Update edits the text. The bool reports a submission; a blank value only
// submits when the purpose allows it.
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, ItemListKeys.Enter):
			return m, nil, m.Value() != "" || m.purpose.allowsEmpty()
		case key.Matches(msg, FormKeys.Escape):
			m.Hide()
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

func (m InputModal) View() string {
	if !m.visible {
		return ""
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		m.input.View(),
		"",
		styles.DimStyle.Render(m.purpose.hint()),
	)
	return styles.ModalStyle.Width(promptWidth).Render(body)
}
