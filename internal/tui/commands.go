package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinephile/internal/domain"
)

// CatalogLoader loads a catalog file, consulting the snapshot cache
type CatalogLoader interface {
	Load(ctx context.Context, path string) ([]*domain.Movie, domain.CatalogInfo, error)
}

// Opener opens a link outside the terminal
type Opener interface {
	Open(link string) error
}

// Command factories for async operations

// LoadCatalogCmd (re)loads the catalog file
func LoadCatalogCmd(loader CatalogLoader, path string, reload bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		movies, info, err := loader.Load(ctx, path)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading catalog"}
		}
		return CatalogLoadedMsg{Movies: movies, Info: info, Reload: reload}
	}
}

// WatchCatalogCmd waits for the next change signal from the file watcher.
// It must be re-issued after every CatalogChangedMsg.
func WatchCatalogCmd(events <-chan struct{}) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return CatalogChangedMsg{}
	}
}

// OpenTrailerCmd opens a movie's trailer
func OpenTrailerCmd(opener Opener, m *domain.Movie) tea.Cmd {
	return func() tea.Msg {
		if opener == nil {
			return ErrMsg{Err: errors.New("no opener configured"), Context: "opening trailer"}
		}
		if err := opener.Open(m.TrailerURL); err != nil {
			return ErrMsg{Err: err, Context: "opening trailer"}
		}
		return TrailerOpenedMsg{Title: m.Title}
	}
}

// SearchDebounceCmd schedules the debounced application of a query
func SearchDebounceCmd(seq int, delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return searchDebounceMsg{seq: seq} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
