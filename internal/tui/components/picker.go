package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinephile/internal/search"
	"github.com/mmcdole/cinephile/internal/tui/styles"
)

// pickerMaxResults is the number of option rows shown at once
const pickerMaxResults = 10

// PickerOption is one choice in a picker. Label is shown and matched
// against the typed query; Value is handed back on selection.
type PickerOption struct {
	Label string
	Value string
}

// Picker is a fuzzy-filterable choice modal used for facet selection and
// for removing active filters
type Picker struct {
	visible bool
	title   string
	current string // value marked with a check

	input     textinput.Model
	prevQuery string

	options []PickerOption
	labels  []string
	matches []search.Match

	cursor int
	offset int

	width  int
	height int
}

// NewPicker creates a new picker modal
func NewPicker() Picker {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.PlaceholderStyle = styles.DimStyle

	return Picker{input: ti}
}

// Show displays the picker with options, placing the cursor on current
func (p *Picker) Show(title string, options []PickerOption, current string) {
	p.visible = true
	p.title = title
	p.current = current
	p.options = options
	p.labels = make([]string, len(options))
	for i, opt := range options {
		p.labels[i] = opt.Label
	}

	p.input.SetValue("")
	p.input.Focus()
	p.prevQuery = ""
	p.refilter()

	p.cursor = 0
	p.offset = 0
	for i, m := range p.matches {
		if options[m.Index].Value == current {
			p.cursor = i
			break
		}
	}
	p.ensureVisible()
}

// Hide dismisses the picker
func (p *Picker) Hide() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns whether the picker is shown
func (p Picker) IsVisible() bool {
	return p.visible
}

// Title returns the picker heading
func (p Picker) Title() string {
	return p.title
}

// Query returns the current filter text
func (p Picker) Query() string {
	return p.input.Value()
}

// MatchCount returns the number of options matching the query
func (p Picker) MatchCount() int {
	return len(p.matches)
}

// SetSize updates the available screen area
func (p *Picker) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = p.modalWidth() - 10
}

// Selected returns the option under the cursor
func (p Picker) Selected() (PickerOption, bool) {
	if p.cursor < 0 || p.cursor >= len(p.matches) {
		return PickerOption{}, false
	}
	return p.options[p.matches[p.cursor].Index], true
}

// Update handles key input, returns (picker, cmd, submitted).
// On submit the picker hides itself; Selected still reports the choice.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd, bool) {
	if !p.visible {
		return p, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			p.Hide()
			return p, nil, false
		case "enter":
			if len(p.matches) == 0 {
				return p, nil, false
			}
			p.Hide()
			return p, nil, true
		case "down", "ctrl+n", "tab":
			if p.cursor < len(p.matches)-1 {
				p.cursor++
				p.ensureVisible()
			}
			return p, nil, false
		case "up", "ctrl+p", "shift+tab":
			if p.cursor > 0 {
				p.cursor--
				p.ensureVisible()
			}
			return p, nil, false
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if q := p.input.Value(); q != p.prevQuery {
		p.prevQuery = q
		p.refilter()
		p.cursor = 0
		p.offset = 0
	}
	return p, cmd, false
}

func (p *Picker) refilter() {
	p.matches = search.FilterOptions(p.input.Value(), p.labels)
}

func (p *Picker) ensureVisible() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+pickerMaxResults {
		p.offset = p.cursor - pickerMaxResults + 1
	}
}

func (p Picker) modalWidth() int {
	w := p.width / 2
	if w < 40 {
		w = 40
	}
	if w > 70 {
		w = 70
	}
	return w
}

// View renders the picker modal (without placement)
func (p Picker) View() string {
	if !p.visible {
		return ""
	}

	modalWidth := p.modalWidth()
	rowWidth := modalWidth - 8

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(p.title))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	if len(p.matches) == 0 {
		b.WriteString(styles.DimStyle.Render("No matches"))
	} else {
		up := " "
		if p.offset > 0 {
			up = styles.DimStyle.Render("↑ more")
		}
		b.WriteString(up)
		b.WriteString("\n")

		end := p.offset + pickerMaxResults
		if end > len(p.matches) {
			end = len(p.matches)
		}
		for i := p.offset; i < end; i++ {
			b.WriteString(p.renderOption(i, rowWidth))
			b.WriteString("\n")
		}

		down := " "
		if end < len(p.matches) {
			down = styles.DimStyle.Render(fmt.Sprintf("↓ %d more", len(p.matches)-end))
		}
		b.WriteString(down)
	}

	content := lipgloss.NewStyle().Width(modalWidth - 4).Render(b.String())
	return styles.ModalStyle.Width(modalWidth).Render(content)
}

func (p Picker) renderOption(i, width int) string {
	match := p.matches[i]
	opt := p.options[match.Index]
	selected := i == p.cursor

	prefix := "  "
	if opt.Value == p.current {
		prefix = "✓ "
	}

	label := opt.Label
	indexes := match.MatchedIndexes
	if truncated := styles.Truncate(label, width-2); truncated != label {
		label = truncated
		indexes = clipIndexes(indexes, len(label)-3)
	}

	line := styles.HighlightMatches(prefix+label, shiftIndexes(indexes, len(prefix)), selected)
	if pad := width - lipgloss.Width(prefix+label); pad > 0 {
		fill := lipgloss.NewStyle()
		if selected {
			fill = fill.Background(styles.SlateLight)
		}
		line += fill.Render(strings.Repeat(" ", pad))
	}
	return line
}

// shiftIndexes offsets byte positions by n to account for a prefix
func shiftIndexes(indexes []int, n int) []int {
	out := make([]int, len(indexes))
	for i, idx := range indexes {
		out[i] = idx + n
	}
	return out
}

// clipIndexes drops positions at or beyond limit
func clipIndexes(indexes []int, limit int) []int {
	var out []int
	for _, idx := range indexes {
		if idx < limit {
			out = append(out, idx)
		}
	}
	return out
}
