package components

import (
	"fmt"
	"strings"

	"github.com/mmcdole/cinephile/internal/catalog"
	"github.com/mmcdole/cinephile/internal/domain"
	"github.com/mmcdole/cinephile/internal/tui/styles"
)

// Layout constants for bordered panes
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// genresPerRow is how many genres a list row shows
const genresPerRow = 3

// MovieList is the scrollable result list with a trailing "load more" row
type MovieList struct {
	view catalog.View

	suggestions []string
	showReason  bool

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool
}

// NewMovieList creates an empty movie list
func NewMovieList(showReason bool) MovieList {
	return MovieList{showReason: showReason, focused: true}
}

// SetView replaces the rows. keepCursor preserves the position, which is
// what "load more" wants; any other change starts from the top.
func (l *MovieList) SetView(v catalog.View, keepCursor bool) {
	l.view = v
	if !keepCursor {
		l.cursor = 0
		l.offset = 0
	}
	if l.cursor >= l.rowCount() {
		l.cursor = l.rowCount() - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureVisible()
}

// CatalogView returns the catalog view being shown
func (l MovieList) CatalogView() catalog.View {
	return l.view
}

// SetSuggestions sets the "did you mean" titles for the empty state
func (l *MovieList) SetSuggestions(titles []string) {
	l.suggestions = titles
}

// SetFocused toggles the active border
func (l *MovieList) SetFocused(focused bool) {
	l.focused = focused
}

// SetSize updates the component dimensions
func (l *MovieList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
}

// rowHeight is the number of lines a movie occupies
func (l MovieList) rowHeight() int {
	if l.showReason {
		return 4
	}
	return 3
}

func (l *MovieList) recalcMaxVisible() {
	// border + title line + scroll indicators
	lines := l.height - BorderHeight - 1 - ScrollIndicatorLines
	l.maxVisible = lines / l.rowHeight()
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
	l.ensureVisible()
}

// rowCount includes the "load more" row when more movies remain
func (l MovieList) rowCount() int {
	n := len(l.view.Visible)
	if l.view.Remaining > 0 {
		n++
	}
	return n
}

// Cursor returns the selected row index
func (l MovieList) Cursor() int {
	return l.cursor
}

// Selected returns the movie under the cursor, nil on the "load more" row
func (l MovieList) Selected() *domain.Movie {
	if l.cursor < 0 || l.cursor >= len(l.view.Visible) {
		return nil
	}
	return l.view.Visible[l.cursor]
}

// OnLoadMore reports whether the cursor rests on the "load more" row
func (l MovieList) OnLoadMore() bool {
	return l.view.Remaining > 0 && l.cursor == len(l.view.Visible)
}

// MoveUp moves the cursor up by n rows
func (l *MovieList) MoveUp(n int) {
	l.cursor -= n
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureVisible()
}

// MoveDown moves the cursor down by n rows
func (l *MovieList) MoveDown(n int) {
	l.cursor += n
	if last := l.rowCount() - 1; l.cursor > last {
		l.cursor = last
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureVisible()
}

// Top moves the cursor to the first row
func (l *MovieList) Top() {
	l.cursor = 0
	l.ensureVisible()
}

// Bottom moves the cursor to the last row
func (l *MovieList) Bottom() {
	l.cursor = l.rowCount() - 1
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureVisible()
}

// PageSize is the number of rows one screen holds
func (l MovieList) PageSize() int {
	return l.maxVisible
}

func (l *MovieList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders the component
func (l MovieList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}

	itemWidth := l.width - BorderWidth
	if itemWidth < 20 {
		itemWidth = 20
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(l.width - frameW).
		Height(l.height - frameH).
		Render(l.renderContent(itemWidth))
}

func (l MovieList) renderContent(width int) string {
	titleLine := styles.AccentStyle.Render(styles.Truncate(l.heading(), width))

	if l.view.Empty() {
		return titleLine + "\n \n" + l.renderEmpty(width)
	}

	count := l.rowCount()
	end := l.offset + l.maxVisible
	if end > count {
		end = count
	}

	var rows []string
	for i := l.offset; i < end; i++ {
		selected := i == l.cursor
		if i == len(l.view.Visible) {
			rows = append(rows, l.renderLoadMore(selected, width))
			continue
		}
		rows = append(rows, l.renderMovie(l.view.Visible[i], selected, width))
	}

	// ALWAYS reserve space for the indicators to prevent layout shifts
	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	return titleLine + "\n" + header + "\n" + strings.Join(rows, "\n") + "\n" + footer
}

func (l MovieList) heading() string {
	if l.view.Empty() {
		return "Movies"
	}
	return fmt.Sprintf("Movies · showing %d of %d", len(l.view.Visible), l.view.Total())
}

func (l MovieList) renderEmpty(width int) string {
	lines := []string{
		styles.TitleStyle.Render("No movies found"),
		styles.DimStyle.Render("Try adjusting your search or filters"),
	}
	if len(l.suggestions) > 0 {
		lines = append(lines, "",
			styles.DimStyle.Render("Did you mean: ")+
				styles.AccentStyle.Render(styles.Truncate(strings.Join(l.suggestions, ", "), width-14)))
	}
	return strings.Join(lines, "\n")
}

func (l MovieList) renderMovie(m *domain.Movie, selected bool, width int) string {
	ratingColor := styles.RatingColor(m.RatingClass())
	dim := styles.DimGray

	titleWidth := width - 20
	title := []styles.RowPart{
		{Text: styles.Truncate(m.Title, titleWidth), Bold: true},
		{Text: "  ★ " + m.DisplayRating(), Foreground: &ratingColor, Bold: true},
	}

	meta := []string{m.DisplayLanguage(), m.DisplayYear(), m.DisplayIndustry()}
	if len(m.Genres) > 0 {
		genres := m.Genres
		if len(genres) > genresPerRow {
			genres = genres[:genresPerRow]
		}
		meta = append(meta, strings.Join(genres, ", "))
	}

	crew := "Dir: " + m.DisplayDirector()
	if m.MusicDirector != "" {
		crew += " · Music: " + m.MusicDirector
	}
	if lead := m.LeadActors(2); len(lead) > 0 {
		crew += " · " + strings.Join(lead, ", ")
	}

	lines := []string{
		styles.RenderListRow(title, selected, width),
		styles.RenderListRow([]styles.RowPart{{Text: "  " + styles.Truncate(strings.Join(meta, " • "), width-4)}}, selected, width),
		styles.RenderListRow([]styles.RowPart{{Text: "  " + styles.Truncate(crew, width-4), Foreground: &dim}}, selected, width),
	}

	if l.showReason {
		reason := l.view.Reason(m)
		lines = append(lines, styles.RenderListRow([]styles.RowPart{{Text: "  " + styles.Truncate(reason, width-4), Foreground: &styles.Indigo}}, selected, width))
	}

	return strings.Join(lines, "\n")
}

func (l MovieList) renderLoadMore(selected bool, width int) string {
	label := fmt.Sprintf("⊕ Load more (%d more)", l.view.Remaining)
	hint := fmt.Sprintf("  next %d · space", l.view.NextBatch())

	lines := []string{
		styles.RenderListRow([]styles.RowPart{{Text: label, Foreground: &styles.Indigo, Bold: true}, {Text: hint}}, selected, width),
	}
	// pad to the height of a movie row so paging stays aligned
	for i := 1; i < l.rowHeight(); i++ {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
