package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinephile/internal/domain"
	"github.com/mmcdole/cinephile/internal/tui/styles"
)

// Layout constants for the detail overlay
const (
	detailMaxWidth  = 90
	detailMinWidth  = 44
	detailChrome    = 8 // modal border + padding + header + footer
	detailLabelSize = 10
)

// Detail is the movie detail overlay. The header and footer stay fixed
// while the body scrolls in a viewport.
type Detail struct {
	movie   *domain.Movie
	reason  string
	visible bool

	body viewport.Model

	width  int
	height int
}

// NewDetail creates a hidden detail overlay
func NewDetail() Detail {
	return Detail{body: viewport.New(0, 0)}
}

// Show opens the overlay for m
func (d *Detail) Show(m *domain.Movie, reason string) {
	d.movie = m
	d.reason = reason
	d.visible = true
	d.layout()
	d.body.GotoTop()
}

// Hide closes the overlay
func (d *Detail) Hide() {
	d.visible = false
}

// IsVisible returns whether the overlay is shown
func (d Detail) IsVisible() bool {
	return d.visible
}

// Movie returns the movie being shown
func (d Detail) Movie() *domain.Movie {
	return d.movie
}

// SetSize updates the available screen area
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.layout()
}

func (d Detail) modalWidth() int {
	w := d.width * 2 / 3
	if w < detailMinWidth {
		w = detailMinWidth
	}
	if w > detailMaxWidth {
		w = detailMaxWidth
	}
	return w
}

func (d *Detail) layout() {
	contentWidth := d.modalWidth() - 6
	h := d.height - detailChrome - 4
	if h < 3 {
		h = 3
	}
	d.body.Width = contentWidth
	d.body.Height = h
	if d.movie != nil {
		d.body.SetContent(renderDetailBody(*d.movie, d.reason, contentWidth))
	}
}

// Update scrolls the body
func (d Detail) Update(msg tea.Msg) (Detail, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	var cmd tea.Cmd
	d.body, cmd = d.body.Update(msg)
	return d, cmd
}

// View renders the overlay (without placement)
func (d Detail) View() string {
	if !d.visible || d.movie == nil {
		return ""
	}
	m := *d.movie
	contentWidth := d.modalWidth() - 6

	ratingColor := styles.RatingColor(m.RatingClass())
	header := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(styles.Truncate(m.Title, contentWidth)),
		lipgloss.NewStyle().Foreground(ratingColor).Bold(true).Render("★ "+m.DisplayRating())+
			styles.DimStyle.Render("  "+m.DisplayYear()+" · "+m.DisplayLanguage()+" · "+m.DisplayIndustry()),
	)

	up := " "
	if !d.body.AtTop() {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if !d.body.AtBottom() {
		down = styles.DimStyle.Render("↓ more")
	}

	var hints []string
	if m.HasTrailer() {
		hints = append(hints, styles.AccentStyle.Render("t")+styles.DimStyle.Render(" trailer"))
	}
	hints = append(hints,
		styles.AccentStyle.Render("j/k")+styles.DimStyle.Render(" scroll"),
		styles.AccentStyle.Render("esc")+styles.DimStyle.Render(" close"),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		up,
		d.body.View(),
		down,
		strings.Join(hints, "  "),
	)

	return styles.ModalStyle.Width(d.modalWidth()).Render(content)
}

// renderDetailBody renders the scrollable part of the overlay
func renderDetailBody(m domain.Movie, reason string, width int) string {
	label := func(s string) string {
		return styles.DimStyle.Render(styles.Pad(s, detailLabelSize))
	}
	wrap := lipgloss.NewStyle().Width(width - detailLabelSize)
	field := func(name, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, label(name), wrap.Render(value))
	}

	genres := "N/A"
	if len(m.Genres) > 0 {
		tags := make([]string, len(m.Genres))
		for i, g := range m.Genres {
			tags[i] = domain.Capitalize(g)
		}
		genres = strings.Join(tags, ", ")
	}

	lines := []string{
		field("Genres", genres),
		field("Director", m.DisplayDirector()),
		field("Music", m.DisplayMusicDirector()),
		field("Cast", m.DisplayCast()),
		"",
		lipgloss.NewStyle().Width(width).Foreground(styles.LightGray).Render(m.DisplaySummary()),
		"",
	}
	if reason != "" {
		lines = append(lines, styles.ReasonStyle.Width(width).Render(reason), "")
	}
	lines = append(lines, field("Poster", m.PosterURL()))
	if m.HasTrailer() {
		lines = append(lines, field("Trailer", m.TrailerURL))
	} else {
		lines = append(lines, field("Trailer", styles.DimStyle.Render("Not available")))
	}
	lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("#%d", m.ID)))

	return strings.Join(lines, "\n")
}
