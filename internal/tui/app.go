package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinephile/internal/catalog"
	"github.com/mmcdole/cinephile/internal/domain"
	"github.com/mmcdole/cinephile/internal/search"
	"github.com/mmcdole/cinephile/internal/tui/components"
	"github.com/mmcdole/cinephile/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// Layout constants
const (
	// search bar (bordered) + filter tags + footer
	ChromeHeight = 5

	// suggestionLimit caps the "did you mean" titles
	suggestionLimit = 3

	statusDuration = 3 * time.Second
)

// Options configures the browser
type Options struct {
	CatalogPath     string
	PageSize        int
	SearchDebounce  time.Duration
	ShowMatchReason bool

	// Selection is the initial selection, e.g. from command-line flags
	Selection *catalog.Selection
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Loader CatalogLoader
	Opener Opener
	Events <-chan struct{} // catalog change signals, nil when not watching

	// Catalog state
	Engine    *catalog.Engine
	Selection catalog.Selection
	Current   catalog.View
	titles    []string

	// UI Components
	SearchBar components.SearchBar
	List      components.MovieList
	Picker    components.Picker
	Detail    components.Detail
	Help      help.Model

	pickerKind catalog.FilterKind
	removing   bool // picker lists active filters for removal

	// searchSeq identifies the latest keystroke; older debounce ticks are dropped
	searchSeq      int
	searchDebounce time.Duration

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	Loading     bool

	catalogPath string
	logger      *slog.Logger
}

// NewModel creates a new application model. engine may be nil, in which
// case the catalog is loaded on Init.
func NewModel(engine *catalog.Engine, loader CatalogLoader, opener Opener, events <-chan struct{}, opts Options, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	sel := catalog.NewSelection(opts.PageSize)
	if opts.Selection != nil {
		sel = *opts.Selection
		sel.PageSize = opts.PageSize
		sel = sel.With(catalog.FilterSearch, sel.Query)
	}

	m := Model{
		State:          StateBrowsing,
		Loader:         loader,
		Opener:         opener,
		Events:         events,
		Selection:      sel,
		SearchBar:      components.NewSearchBar(),
		List:           components.NewMovieList(opts.ShowMatchReason),
		Picker:         components.NewPicker(),
		Detail:         components.NewDetail(),
		Help:           help.New(),
		searchDebounce: opts.SearchDebounce,
		catalogPath:    opts.CatalogPath,
		logger:         logger,
	}
	m.SearchBar.SetValue(sel.Query)

	if engine != nil {
		m.setEngine(engine)
	} else {
		m.Loading = true
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.Engine == nil && m.Loader != nil {
		cmds = append(cmds, LoadCatalogCmd(m.Loader, m.catalogPath, false))
	}
	if cmd := WatchCatalogCmd(m.Events); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case CatalogLoadedMsg:
		m.Loading = false
		engine, err := catalog.NewEngine(msg.Movies, m.logger)
		if err != nil {
			return m.setStatus("Catalog unavailable: "+err.Error(), true)
		}
		m.setEngine(engine)
		m.logger.Info("catalog loaded", "source", msg.Info.Source, "movies", msg.Info.Count,
			"from_cache", msg.Info.FromCache, "reload", msg.Reload)
		if msg.Reload {
			return m.setStatus(fmt.Sprintf("Catalog reloaded · %d movies", engine.Len()), false)
		}
		return m, nil

	case CatalogChangedMsg:
		m.logger.Info("catalog changed on disk", "path", m.catalogPath)
		return m, tea.Batch(
			LoadCatalogCmd(m.Loader, m.catalogPath, true),
			WatchCatalogCmd(m.Events),
		)

	case searchDebounceMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.applySearch()
		return m, nil

	case TrailerOpenedMsg:
		return m.setStatus("Opening trailer for "+msg.Title, false)

	case ErrMsg:
		m.Loading = false
		m.logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		return m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other component messages
	var cmd tea.Cmd
	switch {
	case m.Picker.IsVisible():
		m.Picker, cmd, _ = m.Picker.Update(msg)
	case m.SearchBar.Focused():
		m.SearchBar, cmd, _ = m.SearchBar.Update(msg)
	}
	return m, cmd
}

// handleKeyMsg routes a key press to the topmost layer
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	if m.Picker.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.Picker, cmd, submitted = m.Picker.Update(msg)
		if submitted {
			m.applyPick()
		}
		return m, cmd
	}

	if m.Detail.IsVisible() {
		return m.handleDetailKey(msg)
	}

	if m.SearchBar.Focused() {
		return m.handleSearchKey(msg)
	}

	if m.Engine == nil {
		if key.Matches(msg, Keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	if kind, ok := Keys.FilterKind(msg); ok {
		m.openPicker(kind)
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.List.SetFocused(false)
		return m, m.SearchBar.Focus()

	case key.Matches(msg, Keys.ClearSearch):
		return m.clearSearch()

	case key.Matches(msg, Keys.Escape):
		if m.Selection.IsActive(catalog.FilterSearch) {
			return m.clearSearch()
		}
		return m, nil

	case key.Matches(msg, Keys.Remove):
		return m.openRemovePicker()

	case key.Matches(msg, Keys.Reset):
		return m.resetAll()

	case key.Matches(msg, Keys.LoadMore):
		return m.loadMore()

	case key.Matches(msg, Keys.Detail):
		if m.List.OnLoadMore() {
			return m.loadMore()
		}
		return m.openDetail()

	case key.Matches(msg, Keys.Up):
		m.List.MoveUp(1)
	case key.Matches(msg, Keys.Down):
		m.List.MoveDown(1)
	case key.Matches(msg, Keys.PageUp):
		m.List.MoveUp(m.List.PageSize())
	case key.Matches(msg, Keys.PageDown):
		m.List.MoveDown(m.List.PageSize())
	case key.Matches(msg, Keys.Home):
		m.List.Top()
	case key.Matches(msg, Keys.End):
		m.List.Bottom()
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "down":
		m.SearchBar.Blur()
		m.List.SetFocused(true)
		return m, nil
	case "enter":
		// apply now instead of waiting for the debounce
		m.SearchBar.Blur()
		m.List.SetFocused(true)
		m.searchSeq++
		m.applySearch()
		return m, nil
	case "ctrl+u":
		m.SearchBar.Clear()
		m.searchSeq++
		return m, SearchDebounceCmd(m.searchSeq, m.searchDebounce)
	}

	var cmd tea.Cmd
	var changed bool
	m.SearchBar, cmd, changed = m.SearchBar.Update(msg)
	if !changed {
		return m, cmd
	}
	m.searchSeq++
	return m, tea.Batch(cmd, SearchDebounceCmd(m.searchSeq, m.searchDebounce))
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape), key.Matches(msg, Keys.Detail), msg.String() == "q":
		m.Detail.Hide()
		return m, nil
	case key.Matches(msg, Keys.Trailer):
		movie := m.Detail.Movie()
		if movie == nil || !movie.HasTrailer() {
			return m.setStatus("No trailer available", true)
		}
		return m, OpenTrailerCmd(m.Opener, movie)
	}

	var cmd tea.Cmd
	m.Detail, cmd = m.Detail.Update(msg)
	return m, cmd
}

// setEngine swaps in a (re)loaded catalog, keeping the selection
func (m *Model) setEngine(engine *catalog.Engine) {
	m.Engine = engine
	m.titles = make([]string, 0, engine.Len())
	for _, movie := range engine.Movies() {
		if movie != nil {
			m.titles = append(m.titles, movie.Title)
		}
	}
	m.apply(false)

	// the detail overlay may show a movie the reload removed
	if movie := m.Detail.Movie(); m.Detail.IsVisible() && movie != nil {
		if fresh, err := engine.Lookup(movie.ID); err != nil {
			m.Detail.Hide()
		} else {
			m.Detail.Show(fresh, m.Current.Reason(fresh))
		}
	}
}

// apply recomputes the view for the current selection
func (m *Model) apply(keepCursor bool) {
	if m.Engine == nil {
		return
	}
	m.Current = m.Engine.Apply(m.Selection)
	m.Selection = m.Current.Selection
	m.List.SetView(m.Current, keepCursor)
	m.SearchBar.SetCounts(m.Current.Total(), m.Engine.Len())

	var suggestions []string
	if m.Current.Empty() && m.Selection.Query != "" {
		suggestions = search.Suggest(m.Selection.Query, m.titles, suggestionLimit)
	}
	m.List.SetSuggestions(suggestions)
}

// applySearch commits the search field's text to the selection
func (m *Model) applySearch() {
	q := strings.TrimSpace(m.SearchBar.Value())
	if q == m.Selection.Query {
		return
	}
	m.Selection = m.Selection.WithQuery(q)
	m.logger.Debug("search applied", "query", q)
	m.apply(false)
}

func (m Model) clearSearch() (tea.Model, tea.Cmd) {
	m.SearchBar.Clear()
	m.searchSeq++
	m.Selection = m.Selection.Without(catalog.FilterSearch)
	m.apply(false)
	return m, nil
}

func (m Model) resetAll() (tea.Model, tea.Cmd) {
	if m.Selection.IsDefault() {
		return m.setStatus("No filters to reset", false)
	}
	m.SearchBar.Clear()
	m.searchSeq++
	m.Selection = m.Selection.Reset()
	m.apply(false)
	return m.setStatus("All filters cleared", false)
}

func (m Model) loadMore() (tea.Model, tea.Cmd) {
	if m.Current.Remaining == 0 {
		return m.setStatus("All movies shown", false)
	}
	batch := m.Current.NextBatch()
	m.Current = m.Current.LoadMore()
	m.Selection = m.Current.Selection
	m.List.SetView(m.Current, true)
	return m.setStatus(fmt.Sprintf("Loaded %d more", batch), false)
}

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	selected := m.List.Selected()
	if selected == nil {
		return m, nil
	}
	movie, err := m.Engine.Lookup(selected.ID)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	m.Detail.Show(movie, m.Current.Reason(movie))
	return m, nil
}

// pickerTitles names each facet picker
var pickerTitles = map[catalog.FilterKind]string{
	catalog.FilterGenre:    "Genre",
	catalog.FilterLanguage: "Language",
	catalog.FilterDirector: "Director",
	catalog.FilterActor:    "Actor",
	catalog.FilterMusic:    "Music Director",
	catalog.FilterYear:     "Year",
}

// pickerAllLabels is the unconstrained choice of each facet picker
var pickerAllLabels = map[catalog.FilterKind]string{
	catalog.FilterGenre:    "All Genres",
	catalog.FilterLanguage: "All Languages",
	catalog.FilterDirector: "All Directors",
	catalog.FilterActor:    "All Actors",
	catalog.FilterMusic:    "All Music Directors",
	catalog.FilterYear:     "All Years",
}

func (m *Model) openPicker(kind catalog.FilterKind) {
	values := m.Engine.Facets().Options(kind)
	options := make([]components.PickerOption, 0, len(values)+1)
	options = append(options, components.PickerOption{Label: pickerAllLabels[kind], Value: catalog.All})
	for _, v := range values {
		label := v
		if kind == catalog.FilterGenre || kind == catalog.FilterLanguage {
			label = domain.Capitalize(v)
		}
		options = append(options, components.PickerOption{Label: label, Value: v})
	}

	m.pickerKind = kind
	m.removing = false
	m.Picker.Show(pickerTitles[kind], options, m.Selection.Value(kind))
}

func (m Model) openRemovePicker() (tea.Model, tea.Cmd) {
	active := m.Selection.ActiveFilters()
	if len(active) == 0 {
		return m.setStatus("No active filters", false)
	}

	options := make([]components.PickerOption, len(active))
	for i, f := range active {
		options[i] = components.PickerOption{Label: components.TagLabel(f), Value: f.Kind.String()}
	}
	m.removing = true
	m.Picker.Show("Remove filter", options, "")
	return m, nil
}

// applyPick commits the picker's choice to the selection
func (m *Model) applyPick() {
	opt, ok := m.Picker.Selected()
	if !ok {
		return
	}

	if m.removing {
		kind, err := catalog.ParseFilterKind(opt.Value)
		if err != nil {
			m.logger.Warn("unknown filter in remove picker", "value", opt.Value)
			return
		}
		if kind == catalog.FilterSearch {
			m.SearchBar.Clear()
			m.searchSeq++
		}
		m.Selection = m.Selection.Without(kind)
	} else {
		m.Selection = m.Selection.With(m.pickerKind, opt.Value)
	}
	m.logger.Debug("selection changed", "filters", len(m.Selection.ActiveFilters()))
	m.apply(false)
}

func (m Model) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return m, ClearStatusCmd(statusDuration)
}

// updateLayout sizes every component for the current window
func (m *Model) updateLayout() {
	m.SearchBar.SetWidth(m.Width)
	listHeight := m.Height - ChromeHeight
	if listHeight < 6 {
		listHeight = 6
	}
	m.List.SetSize(m.Width, listHeight)
	m.Picker.SetSize(m.Width, m.Height)
	m.Detail.SetSize(m.Width, m.Height)
	m.Help.Width = m.Width / 2
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	var body string
	if m.Engine == nil {
		body = lipgloss.Place(m.Width, m.Height-ChromeHeight, lipgloss.Center, lipgloss.Center,
			styles.SpinnerStyle.Render(styles.SpinnerFrames[0])+styles.DimStyle.Render(" Loading catalog..."))
	} else {
		body = m.List.View()
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.SearchBar.View(),
		components.RenderFilterTags(m.Selection.ActiveFilters(), m.Width),
		body,
		m.renderFooter(),
	)

	// Overlay picker if visible
	if m.Picker.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Picker.View())
	}

	// Overlay detail if visible
	if m.Detail.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Detail.View())
	}

	return view
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: status message
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	} else if m.Loading {
		left = styles.DimStyle.Render("Loading...")
	}

	// Center section: short key hints
	center := m.Help.ShortHelpView(Keys.ShortHelp())

	// Right side: "? help" hint
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	// Layout: left + centered hints + right
	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent >= m.Width {
		// Not enough space - just left + right
		gap := m.Width - leftWidth - rightWidth
		if gap < 0 {
			gap = 0
		}
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	full := help.New()
	full.ShowAll = true

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Keys"),
		full.View(Keys),
		"",
		styles.DimStyle.Render("Press any key to return..."),
	)

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(content))
}
