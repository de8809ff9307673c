package tui

import (
	"github.com/mmcdole/cinephile/internal/domain"
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

// CatalogLoadedMsg signals that the catalog file has been (re)loaded
type CatalogLoadedMsg struct {
	Movies []*domain.Movie
	Info   domain.CatalogInfo
	Reload bool
}

// CatalogChangedMsg signals that the catalog file changed on disk
type CatalogChangedMsg struct{}

// searchDebounceMsg fires once typing has paused; stale sequence numbers
// are ignored so only the latest query is applied
type searchDebounceMsg struct {
	seq int
}

// TrailerOpenedMsg signals that a trailer was handed to the browser
type TrailerOpenedMsg struct {
	Title string
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
