package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/chronicle/internal/domain"
	"github.com/mmcdole/chronicle/internal/tui/styles"
)

// Layout constants for inspector
const (
	InspectorBorderHeight     = 2
	InspectorScrollIndicators = 2
)

// Inspector displays the details of the selected item
type Inspector struct {
	item       *domain.MediaItem
	width      int
	height     int
	offset     int // scroll offset
	maxVisible int // max visible lines
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{}
}

// SetItem sets the item to display; nil clears it
func (i *Inspector) SetItem(item *domain.MediaItem) {
	if i.item == nil || item == nil || i.item.ID != item.ID {
		i.offset = 0 // Reset scroll on item change
	}
	i.item = item
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	// Reserve space for border, scroll indicators, title and blank line
	i.maxVisible = height - InspectorBorderHeight - InspectorScrollIndicators - 2
	if i.maxVisible < 1 {
		i.maxVisible = 1
	}
}

// HasItem returns true if there is an item to display
func (i Inspector) HasItem() bool {
	return i.item != nil
}

// ScrollDown moves the body down one line
func (i *Inspector) ScrollDown() {
	i.offset++
}

// ScrollUp moves the body up one line
func (i *Inspector) ScrollUp() {
	if i.offset > 0 {
		i.offset--
	}
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder

	// Border takes 2 chars (1 each side), leave 1 char safety margin
	contentWidth := i.width - 3
	if contentWidth < 10 {
		contentWidth = 10
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate("Info", contentWidth))

	bodyLines := splitLines(i.renderBody(contentWidth))

	// Clamp body scroll offset
	maxOffset := len(bodyLines) - i.maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	offset := i.offset
	if offset > maxOffset {
		offset = maxOffset
	}
	end := offset + i.maxVisible
	if end > len(bodyLines) {
		end = len(bodyLines)
	}

	header := " "
	if offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < len(bodyLines) {
		footer = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine, header}
	parts = append(parts, bodyLines[offset:end]...)
	parts = append(parts, footer)

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(i.width - frameW).
		Height(i.height - frameH).
		Render(strings.Join(parts, "\n"))
}

func (i Inspector) renderBody(width int) string {
	if i.item == nil {
		return styles.DimStyle.Render("Nothing selected")
	}
	item := i.item

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Width(width).Render(styles.TitleStyle.Render(item.Title)))
	b.WriteString("\n")
	b.WriteString(styles.BadgeStyle.Render(string(item.Type)) + " " + styles.DimBadgeStyle.Render(string(item.Status)))
	b.WriteString("\n\n")

	b.WriteString(styles.RenderRating(item.Rating) + " " + styles.SubtitleStyle.Render(item.FormattedRating()+"/10"))
	b.WriteString("\n")

	if item.InWatchlist {
		glyph, fg := styles.WatchlistIndicator(true, string(item.WatchlistStatus))
		b.WriteString(lipgloss.NewStyle().Foreground(fg).Render(glyph + " " + item.WatchlistLabel()))
	} else {
		b.WriteString(styles.DimStyle.Render("Not on watchlist"))
	}
	b.WriteString("\n\n")

	if len(item.Genres) > 0 {
		b.WriteString(styles.DimStyle.Render("Genres"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(styles.LightGray).Render(item.GenreList()))
		b.WriteString("\n\n")
	}

	if item.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(styles.LightGray).Render(item.Description))
		b.WriteString("\n\n")
	}

	if item.ImageURL != "" {
		b.WriteString(styles.DimStyle.Render("Image"))
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(item.ImageURL, width)))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.DimStyle.Render("ID " + styles.Truncate(item.ID, width-3)))
	return b.String()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
