package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/chronicle/internal/domain"
	"github.com/mmcdole/chronicle/internal/form"
	"github.com/mmcdole/chronicle/internal/tui/styles"
)

type formField int

const (
	fieldTitle formField = iota
	fieldType
	fieldStatus
	fieldGenres
	fieldRating
	fieldDescription
	fieldImage
	fieldCount
)

// FormResult reports what happened to the form on a key press
type FormResult int

const (
	FormPending FormResult = iota
	FormSubmitted
	FormCancelled
)

// ItemForm is the add/edit modal for a single item
type ItemForm struct {
	visible bool
	editID  string // empty when adding
	focus   formField

	title       textinput.Model
	rating      textinput.Model
	image       textinput.Model
	description textarea.Model

	mediaType   domain.MediaType
	status      domain.Status
	genres      map[domain.Genre]bool
	genreCursor int

	err string
}

// NewItemForm creates a hidden form
func NewItemForm() ItemForm {
	newInput := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		ti.Width = 40
		ti.Prompt = ""
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		return ti
	}

	ta := textarea.New()
	ta.Placeholder = "Description (optional)"
	ta.ShowLineNumbers = false
	ta.SetWidth(42)
	ta.SetHeight(4)

	return ItemForm{
		title:       newInput("Title", 200),
		rating:      newInput("0-10 in steps of 0.5", 4),
		image:       newInput("https://... (optional)", 500),
		description: ta,
		genres:      make(map[domain.Genre]bool),
	}
}

// ShowAdd opens an empty form
func (f *ItemForm) ShowAdd() {
	f.show("", form.Input{
		Type:   domain.MediaTypeAnime,
		Status: domain.StatusOngoing,
	})
}

// ShowEdit opens the form prefilled from item
func (f *ItemForm) ShowEdit(item domain.MediaItem) {
	f.show(item.ID, form.FromItem(item))
}

func (f *ItemForm) show(id string, in form.Input) {
	f.visible = true
	f.editID = id
	f.err = ""
	f.title.SetValue(in.Title)
	f.rating.SetValue(strconv.FormatFloat(in.Rating, 'f', -1, 64))
	f.image.SetValue(in.ImageURL)
	f.description.SetValue(in.Description)
	f.mediaType = in.Type
	f.status = in.Status
	f.genres = make(map[domain.Genre]bool)
	for _, g := range in.Genres {
		f.genres[g] = true
	}
	f.genreCursor = 0
	f.setFocus(fieldTitle)
}

// Hide dismisses the form
func (f *ItemForm) Hide() {
	f.visible = false
	f.title.Blur()
	f.rating.Blur()
	f.image.Blur()
	f.description.Blur()
}

// IsVisible returns whether the form is shown
func (f ItemForm) IsVisible() bool {
	return f.visible
}

// EditID returns the id being edited, or "" for a new item
func (f ItemForm) EditID() string {
	return f.editID
}

// SetError shows a validation message under the form
func (f *ItemForm) SetError(msg string) {
	f.err = msg
}

// Input collects the form values. An unparsable rating is reported as -1
// so validation rejects it.
func (f ItemForm) Input() form.Input {
	rating, err := strconv.ParseFloat(strings.TrimSpace(f.rating.Value()), 64)
	if err != nil {
		rating = -1
	}

	var genres []domain.Genre
	for _, g := range domain.AllGenres() {
		if f.genres[g] {
			genres = append(genres, g)
		}
	}

	return form.Input{
		Title:       f.title.Value(),
		Type:        f.mediaType,
		Genres:      genres,
		Description: f.description.Value(),
		Rating:      rating,
		Status:      f.status,
		ImageURL:    f.image.Value(),
	}
}

// Update handles key presses, returns (form, cmd, result)
func (f ItemForm) Update(msg tea.Msg) (ItemForm, tea.Cmd, FormResult) {
	if !f.visible {
		return f, nil, FormPending
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil, FormPending
	}

	switch {
	case key.Matches(keyMsg, FormKeys.Escape):
		f.Hide()
		return f, nil, FormCancelled
	case key.Matches(keyMsg, FormKeys.Submit):
		return f, nil, FormSubmitted
	case key.Matches(keyMsg, FormKeys.Next):
		f.setFocus((f.focus + 1) % fieldCount)
		return f, nil, FormPending
	case key.Matches(keyMsg, FormKeys.Prev):
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return f, nil, FormPending
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		if keyMsg.String() == "enter" {
			return f, nil, FormSubmitted
		}
		f.title, cmd = f.title.Update(msg)
	case fieldRating:
		if keyMsg.String() == "enter" {
			return f, nil, FormSubmitted
		}
		f.rating, cmd = f.rating.Update(msg)
	case fieldImage:
		if keyMsg.String() == "enter" {
			return f, nil, FormSubmitted
		}
		f.image, cmd = f.image.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldType:
		f.mediaType = cycle(domain.AllMediaTypes(), f.mediaType, direction(keyMsg))
	case fieldStatus:
		f.status = cycle(domain.AllStatuses(), f.status, direction(keyMsg))
	case fieldGenres:
		all := domain.AllGenres()
		switch {
		case key.Matches(keyMsg, FormKeys.Left):
			f.genreCursor = (f.genreCursor + len(all) - 1) % len(all)
		case key.Matches(keyMsg, FormKeys.Right):
			f.genreCursor = (f.genreCursor + 1) % len(all)
		case key.Matches(keyMsg, FormKeys.Toggle):
			g := all[f.genreCursor]
			f.genres[g] = !f.genres[g]
		}
	}
	return f, cmd, FormPending
}

func (f *ItemForm) setFocus(field formField) {
	f.focus = field
	f.title.Blur()
	f.rating.Blur()
	f.image.Blur()
	f.description.Blur()
	switch field {
	case fieldTitle:
		f.title.Focus()
	case fieldRating:
		f.rating.Focus()
	case fieldImage:
		f.image.Focus()
	case fieldDescription:
		f.description.Focus()
	}
}

func direction(msg tea.KeyMsg) int {
	switch {
	case key.Matches(msg, FormKeys.Left):
		return -1
	case key.Matches(msg, FormKeys.Right), key.Matches(msg, FormKeys.Toggle):
		return 1
	}
	return 0
}

func cycle[T comparable](options []T, current T, step int) T {
	if step == 0 || len(options) == 0 {
		return current
	}
	idx := 0
	for i, opt := range options {
		if opt == current {
			idx = i
			break
		}
	}
	idx = (idx + step + len(options)) % len(options)
	return options[idx]
}

// View renders the form
func (f ItemForm) View() string {
	if !f.visible {
		return ""
	}

	heading := "Add Item"
	if f.editID != "" {
		heading = "Edit Item"
	}

	label := func(field formField, text string) string {
		if field == f.focus {
			return styles.AccentStyle.Render("▸ " + text)
		}
		return styles.DimStyle.Render("  " + text)
	}

	var lines []string
	lines = append(lines, styles.ModalTitleStyle.Render(heading))
	lines = append(lines, label(fieldTitle, "Title"), "  "+f.title.View(), "")
	lines = append(lines, label(fieldType, "Type")+"    "+f.renderOptions(domain.AllMediaTypes(), f.mediaType))
	lines = append(lines, label(fieldStatus, "Status")+"  "+f.renderOptions(domain.AllStatuses(), f.status), "")
	lines = append(lines, label(fieldGenres, "Genres"))
	lines = append(lines, f.renderGenres()...)
	lines = append(lines, "")
	lines = append(lines, label(fieldRating, "Rating"), "  "+f.rating.View(), "")
	lines = append(lines, label(fieldDescription, "Description"), f.description.View(), "")
	lines = append(lines, label(fieldImage, "Image URL"), "  "+f.image.View())

	if f.err != "" {
		lines = append(lines, "", styles.ErrorStyle.Width(44).Render(f.err))
	}
	lines = append(lines, "", styles.DimStyle.Render("Tab: Next  ←/→: Choose  Space: Genre  C-s: Save  Esc: Cancel"))

	return styles.ModalStyle.Render(strings.Join(lines, "\n"))
}

func (f ItemForm) renderOptions(options any, current any) string {
	var names []string
	switch opts := options.(type) {
	case []domain.MediaType:
		for _, o := range opts {
			names = append(names, string(o))
		}
	case []domain.Status:
		for _, o := range opts {
			names = append(names, string(o))
		}
	}

	cur := ""
	switch c := current.(type) {
	case domain.MediaType:
		cur = string(c)
	case domain.Status:
		cur = string(c)
	}

	parts := make([]string, len(names))
	for i, name := range names {
		if name == cur {
			parts[i] = styles.BadgeStyle.Render(name)
		} else {
			parts[i] = styles.DimStyle.Render(" " + name + " ")
		}
	}
	return strings.Join(parts, " ")
}

func (f ItemForm) renderGenres() []string {
	const perLine = 3
	all := domain.AllGenres()

	var lines []string
	var row []string
	for i, g := range all {
		box := "[ ]"
		if f.genres[g] {
			box = "[x]"
		}
		cell := styles.Pad(box+" "+string(g), 18)

		style := lipgloss.NewStyle().Foreground(styles.LightGray)
		switch {
		case f.focus == fieldGenres && i == f.genreCursor:
			style = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight)
		case f.genres[g]:
			style = lipgloss.NewStyle().Foreground(styles.Sakura)
		}
		row = append(row, style.Render(cell))

		if len(row) == perLine || i == len(all)-1 {
			lines = append(lines, "  "+strings.Join(row, " "))
			row = nil
		}
	}
	return lines
}
