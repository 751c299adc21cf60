package tui

import (
	"github.com/mmcdole/chronicle/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ImportReadMsg carries the items parsed from an import file. The
// collection is only touched once this reaches Update.
type ImportReadMsg struct {
	Path  string
	Items []domain.MediaItem
}

// ExportDoneMsg signals that an export file was written
type ExportDoneMsg struct {
	Path  string
	Count int
}

// ClearStatusMsg clears the status message
type ClearStatusMsg struct{}
