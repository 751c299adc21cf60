package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/chronicle/internal/domain"
	"github.com/mmcdole/chronicle/internal/transfer"
)

// Status messages stay on screen this long
const (
	StatusTimeout      = 3 * time.Second
	ErrorStatusTimeout = 5 * time.Second
)

// ReadImportCmd parses a CSV file off the UI goroutine
func ReadImportCmd(svc *transfer.Service, path string) tea.Cmd {
	return func() tea.Msg {
		items, err := svc.ReadFile(path)
		if err != nil {
			return ErrMsg{Err: err, Context: "Import failed"}
		}
		return ImportReadMsg{Path: path, Items: items}
	}
}

// ExportCmd writes a snapshot of the collection to dir
func ExportCmd(svc *transfer.Service, dir string, items []domain.MediaItem) tea.Cmd {
	return func() tea.Msg {
		path, err := svc.WriteFile(dir, items, time.Now())
		if err != nil {
			return ErrMsg{Err: err, Context: "Export failed"}
		}
		return ExportDoneMsg{Path: path, Count: len(items)}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
