package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/chronicle/internal/domain"
	"github.com/mmcdole/chronicle/internal/query"
	"github.com/mmcdole/chronicle/internal/tui/styles"
)

// shortIDLen is how much of an id the list shows; any unique prefix
// is accepted back as an argument
const shortIDLen = 8

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.Sakura).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// printItems writes a result as a table followed by a count line
func printItems(w io.Writer, res query.Result) error {
	if res.Total == 0 {
		_, err := fmt.Fprintln(w, "No items yet. Add one with `chronicle add` or import a CSV with `chronicle import`.")
		return err
	}
	if res.Matched == 0 {
		_, err := fmt.Fprintf(w, "No items match (0 of %d).\n", res.Total)
		return err
	}

	rows := make([][]string, len(res.Items))
	for i, item := range res.Items {
		rows[i] = []string{
			shortID(item.ID),
			styles.Truncate(item.Title, 40),
			string(item.Type),
			string(item.Status),
			item.FormattedRating(),
			watchlistCell(item),
			styles.Truncate(item.GenreList(), 30),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.DimGray)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("ID", "TITLE", "TYPE", "STATUS", "RATING", "WATCHLIST", "GENRES").
		Rows(rows...)

	_, err := fmt.Fprintf(w, "%s\n%d of %d items\n", t.Render(), res.Matched, res.Total)
	return err
}

func watchlistCell(item domain.MediaItem) string {
	if !item.InWatchlist {
		return "-"
	}
	return string(item.WatchlistStatus)
}

// printItem writes every field of a single item
func printItem(w io.Writer, item domain.MediaItem) error {
	label := lipgloss.NewStyle().Foreground(styles.DimGray).Width(12)

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(item.Title) + "\n")
	line := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(label.Render(name) + value + "\n")
	}
	line("ID", item.ID)
	line("Type", string(item.Type))
	line("Status", string(item.Status))
	line("Rating", item.FormattedRating()+"/10")
	line("Genres", item.GenreList())
	if item.InWatchlist {
		line("Watchlist", item.WatchlistLabel())
	} else {
		line("Watchlist", "-")
	}
	line("Image", item.ImageURL)
	if item.Description != "" {
		b.WriteString("\n" + item.Description + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// confirm asks a yes/no question; anything but y/yes is no
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
