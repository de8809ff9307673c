package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinephile/internal/tui/styles"
)

// SearchBar is the free-text search field above the movie list
type SearchBar struct {
	input textinput.Model
	width int

	total   int // matching movies
	catalog int // catalog size
}

// NewSearchBar creates a new search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search titles, directors, actors, music..."
	ti.CharLimit = 100
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBar{input: ti}
}

// Focus starts accepting keystrokes
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur stops accepting keystrokes, keeping the text
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the field is being typed into
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the raw query text
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the query text
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
}

// Clear empties the field
func (s *SearchBar) Clear() {
	s.input.Reset()
}

// SetCounts updates the "N of M" indicator
func (s *SearchBar) SetCounts(total, catalog int) {
	s.total = total
	s.catalog = catalog
}

// SetWidth updates the component width
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	s.input.Width = width - 24
	if s.input.Width < 10 {
		s.input.Width = 10
	}
}

// Update passes messages to the text input, returns (bar, cmd, changed)
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	if !s.input.Focused() {
		return s, nil, false
	}
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, s.input.Value() != before
}

// View renders the bordered search field with the match counter
func (s SearchBar) View() string {
	style := styles.InactiveBorder
	if s.input.Focused() {
		style = styles.ActiveBorder
	}
	frameW, _ := style.GetFrameSize()
	inner := s.width - frameW
	if inner < 20 {
		inner = 20
	}

	count := styles.DimStyle.Render(fmt.Sprintf("%d of %d", s.total, s.catalog))
	field := s.input.View()
	gap := inner - lipgloss.Width(field) - lipgloss.Width(count) - 1
	if gap < 1 {
		gap = 1
	}

	return style.Width(inner).Render(
		field + strings.Repeat(" ", gap) + count,
	)
}
