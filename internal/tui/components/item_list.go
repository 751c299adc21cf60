package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/chronicle/internal/domain"
	"github.com/mmcdole/chronicle/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for list columns
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// ItemList is a scrollable list of media items with an inline fuzzy
// title filter.
type ItemList struct {
	items []domain.MediaItem

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	// Column title (shown in header)
	title string

	// Message shown when there are no items at all
	emptyMsg string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into items
}

// NewItemList creates an empty list with the given title
func NewItemList(title string) *ItemList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ItemList{
		title:       title,
		emptyMsg:    "No items",
		filterInput: ti,
		focused:     true,
	}
}

// SetItems replaces the list contents. The cursor stays on the item with
// the same id when it is still present.
func (c *ItemList) SetItems(items []domain.MediaItem) {
	selectedID := ""
	if item, ok := c.SelectedItem(); ok {
		selectedID = item.ID
	}

	c.items = items
	if c.filterActive {
		c.applyFilter()
	}

	c.cursor = 0
	if selectedID != "" {
		for i := 0; i < c.ItemCount(); i++ {
			if c.items[c.mapIndex(i)].ID == selectedID {
				c.cursor = i
				break
			}
		}
	}
	c.clampCursor()
	c.ensureVisible()
}

// SelectID moves the cursor to the item with id, if visible
func (c *ItemList) SelectID(id string) bool {
	for i := 0; i < c.ItemCount(); i++ {
		if c.items[c.mapIndex(i)].ID == id {
			c.cursor = i
			c.ensureVisible()
			return true
		}
	}
	return false
}

// SetTitle changes the header line
func (c *ItemList) SetTitle(title string) {
	c.title = title
}

// SetEmptyMessage sets the text shown when the list has no items
func (c *ItemList) SetEmptyMessage(msg string) {
	c.emptyMsg = msg
}

// Update handles navigation and filter typing
func (c *ItemList) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	// Typing into the filter
	if c.IsFilterTyping() {
		switch {
		case key.Matches(keyMsg, ItemListKeys.Escape):
			c.clearFilter()
			return nil
		case key.Matches(keyMsg, ItemListKeys.Enter):
			c.filterInput.Blur()
			return nil
		case keyMsg.String() == "backspace" && c.filterInput.Value() == "":
			c.clearFilter()
			return nil
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return cmd
	}

	// Filter applied, input blurred
	if c.filterActive {
		switch {
		case key.Matches(keyMsg, ItemListKeys.Escape):
			c.clearFilter()
			return nil
		case key.Matches(keyMsg, ItemListKeys.Filter):
			c.filterInput.Focus()
			return nil
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return nil
	}

	switch {
	case key.Matches(keyMsg, ItemListKeys.Down):
		if c.cursor < count-1 {
			c.cursor++
		}
	case key.Matches(keyMsg, ItemListKeys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(keyMsg, ItemListKeys.Home):
		c.cursor = 0
	case key.Matches(keyMsg, ItemListKeys.End):
		c.cursor = count - 1
	case key.Matches(keyMsg, ItemListKeys.HalfDown):
		c.cursor += c.maxVisible / 2
	case key.Matches(keyMsg, ItemListKeys.HalfUp):
		c.cursor -= c.maxVisible / 2
	case key.Matches(keyMsg, ItemListKeys.PageDown):
		c.cursor += c.maxVisible
	case key.Matches(keyMsg, ItemListKeys.PageUp):
		c.cursor -= c.maxVisible
	}
	c.clampCursor()
	c.ensureVisible()
	return nil
}

// View renders the list inside a border
func (c *ItemList) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	content := c.renderContent()

	// Subtract frame (border) size so total rendered size equals c.width x c.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(c.width - frameW).
		Height(c.height - frameH).
		Render(content)
}

// SetSize sets the outer dimensions
func (c *ItemList) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *ItemList) SetFocused(focused bool) {
	c.focused = focused
}

// SelectedItem returns the item under the cursor
func (c *ItemList) SelectedItem() (domain.MediaItem, bool) {
	count := c.ItemCount()
	if count == 0 || c.cursor >= count {
		return domain.MediaItem{}, false
	}
	return c.items[c.mapIndex(c.cursor)], true
}

func (c *ItemList) SelectedIndex() int {
	return c.cursor
}

// Items returns the visible items in display order
func (c *ItemList) Items() []domain.MediaItem {
	out := make([]domain.MediaItem, c.ItemCount())
	for i := range out {
		out[i] = c.items[c.mapIndex(i)]
	}
	return out
}

// ItemCount returns the number of visible items (after the quick filter)
func (c *ItemList) ItemCount() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return len(c.items)
}

// ToggleFilter activates the filter input
func (c *ItemList) ToggleFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (c *ItemList) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *ItemList) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (c *ItemList) ClearFilter() {
	c.clearFilter()
}

// FilterQuery returns the active quick filter text
func (c *ItemList) FilterQuery() string {
	return c.filterQuery
}

// Internal methods

func (c *ItemList) recalcMaxVisible() {
	// Interior height minus title line and scroll indicators
	interiorHeight := c.height - BorderHeight
	c.maxVisible = interiorHeight - ScrollIndicatorLines - 1
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *ItemList) clampCursor() {
	if last := c.ItemCount() - 1; c.cursor > last {
		c.cursor = last
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

func (c *ItemList) ensureVisible() {
	// Don't adjust offset if size hasn't been set yet
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *ItemList) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filteredIdx = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

func (c *ItemList) applyFilter() {
	query := c.filterInput.Value()
	c.filterQuery = query

	if query == "" {
		c.filteredIdx = nil
		return
	}

	lowerTitles := make([]string, len(c.items))
	for i, item := range c.items {
		lowerTitles[i] = strings.ToLower(item.Title)
	}

	matches := fuzzy.Find(strings.ToLower(query), lowerTitles)

	c.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		c.filteredIdx[i] = match.Index
	}

	// Reset cursor to first match
	c.cursor = 0
	c.offset = 0
}

func (c *ItemList) mapIndex(i int) int {
	if c.filteredIdx != nil && i < len(c.filteredIdx) {
		return c.filteredIdx[i]
	}
	return i
}

// Rendering

func (c *ItemList) renderContent() string {
	itemWidth := c.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	count := c.ItemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render(c.emptyMsg)
		if c.filterActive && c.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n" + " " + "\n" + emptyMsg + "\n" + " "
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	end := c.offset + c.maxVisible
	if end > count {
		end = count
	}

	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderItem(c.items[c.mapIndex(i)], i == c.cursor, itemWidth))
	}

	// Always reserve the indicator lines to prevent layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}
	return content
}

func (c *ItemList) renderItem(item domain.MediaItem, selected bool, width int) string {
	indicator, indicatorFg := styles.WatchlistIndicator(item.InWatchlist, string(item.WatchlistStatus))
	dim := styles.DimGray

	rating := fmt.Sprintf("%4s", item.FormattedRating())
	kind := "A"
	if item.Type == domain.MediaTypeManhwa {
		kind = "M"
	}

	// indicator(1) + space + kind(1) + space + rating(4) + space + margins(2)
	availableForTitle := width - 10
	if availableForTitle < 5 {
		availableForTitle = 5
	}
	title := styles.Truncate(item.Title, availableForTitle)

	parts := []styles.RowPart{
		{Text: indicator, Foreground: &indicatorFg},
		{Text: " " + kind, Foreground: &dim},
		{Text: " " + title, Foreground: nil},
	}
	used := lipgloss.Width(indicator) + 2 + lipgloss.Width(" "+title)
	if gap := width - 2 - used - 5; gap > 0 {
		parts = append(parts, styles.RowPart{Text: strings.Repeat(" ", gap)})
	}
	parts = append(parts, styles.RowPart{Text: " " + rating})

	return styles.RenderListRow(parts, selected, width)
}

func (c *ItemList) renderFilterBar() string {
	input := c.filterInput.View()

	countStr := ""
	if c.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), len(c.items)))
	}
	return input + countStr
}
