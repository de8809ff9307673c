package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinephile/internal/catalog"
)

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Search
	Search      key.Binding
	ClearSearch key.Binding

	// Filters
	Genre    key.Binding
	Language key.Binding
	Director key.Binding
	Actor    key.Binding
	Music    key.Binding
	Year     key.Binding
	Remove   key.Binding
	Reset    key.Binding

	// Actions
	LoadMore key.Binding
	Detail   key.Binding
	Trailer  key.Binding
	Escape   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("PgDn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("Home", "first movie"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G/End", "last row"),
		),

		// Search
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("C-u", "clear search"),
		),

		// Filters
		Genre: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "genre"),
		),
		Language: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "language"),
		),
		Director: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "director"),
		),
		Actor: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "actor"),
		),
		Music: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "music director"),
		),
		Year: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "year"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove filter"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset all"),
		),

		// Actions
		LoadMore: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "load more"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Trailer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "trailer"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close/cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp is shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Genre, k.Remove, k.LoadMore, k.Detail}
}

// FullHelp is shown on the help screen, one column per group
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Search, k.ClearSearch, k.Genre, k.Language, k.Director, k.Actor, k.Music, k.Year},
		{k.Remove, k.Reset, k.LoadMore, k.Detail, k.Trailer, k.Escape, k.Help, k.Quit},
	}
}

// FilterKind maps a picker binding to the criterion it edits
func (k KeyMap) FilterKind(msg tea.KeyMsg) (catalog.FilterKind, bool) {
	switch {
	case key.Matches(msg, k.Genre):
		return catalog.FilterGenre, true
	case key.Matches(msg, k.Language):
		return catalog.FilterLanguage, true
	case key.Matches(msg, k.Director):
		return catalog.FilterDirector, true
	case key.Matches(msg, k.Actor):
		return catalog.FilterActor, true
	case key.Matches(msg, k.Music):
		return catalog.FilterMusic, true
	case key.Matches(msg, k.Year):
		return catalog.FilterYear, true
	default:
		return 0, false
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
