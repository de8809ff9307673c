package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinephile/internal/catalog"
	"github.com/mmcdole/cinephile/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []*domain.Movie {
	return []*domain.Movie{
		{ID: 1, Title: "Nayakan", Year: 1987, Language: "tamil", Industry: "Kollywood", Rating: 8.7,
			Genres: []string{"crime", "drama"}, Director: "Mani Ratnam", Actors: []string{"Kamal Haasan"},
			MusicDirector: "Ilaiyaraaja", TrailerURL: "https://example.com/nayakan"},
		{ID: 2, Title: "Roja", Year: 1992, Language: "tamil", Rating: 8.1,
			Genres: []string{"romance", "thriller"}, Director: "Mani Ratnam", Actors: []string{"Arvind Swamy"},
			MusicDirector: "A. R. Rahman"},
		{ID: 3, Title: "Sholay", Year: 1975, Language: "hindi", Industry: "Bollywood", Rating: 8.2,
			Genres: []string{"action", "drama"}, Director: "Ramesh Sippy",
			Actors: []string{"Amitabh Bachchan", "Dharmendra"}, MusicDirector: "R. D. Burman"},
		{ID: 4, Title: "Pather Panchali", Year: 1955, Language: "bengali", Rating: 8.3,
			Genres: []string{"drama"}, Director: "Satyajit Ray", MusicDirector: "Ravi Shankar"},
	}
}

type fakeLoader struct {
	movies []*domain.Movie
	err    error
}

func (f *fakeLoader) Load(_ context.Context, path string) ([]*domain.Movie, domain.CatalogInfo, error) {
	if f.err != nil {
		return nil, domain.CatalogInfo{}, f.err
	}
	return f.movies, domain.CatalogInfo{Source: path, Count: len(f.movies)}, nil
}

type fakeOpener struct {
	opened []string
}

func (f *fakeOpener) Open(link string) error {
	f.opened = append(f.opened, link)
	return nil
}

func newTestModel(t *testing.T, opts Options) (Model, *fakeOpener) {
	t.Helper()
	engine, err := catalog.NewEngine(fixture(), nil)
	require.NoError(t, err)

	opener := &fakeOpener{}
	opts.CatalogPath = "movies.json"
	m := NewModel(engine, &fakeLoader{movies: fixture()}, opener, nil, opts, nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), opener
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press sends each key in turn and returns the final model and last command
func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m, cmd
}

func titles(movies []*domain.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

func TestModel_InitialViewSortedByRating(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	assert.Equal(t, 4, m.Current.Total())
	assert.Equal(t, []string{"Nayakan", "Pather Panchali", "Sholay", "Roja"}, titles(m.Current.Visible))
	assert.True(t, m.Selection.IsDefault())
	assert.Contains(t, m.View(), "Nayakan")
}

func TestModel_GenrePicker(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, _ = press(m, "g")
	require.True(t, m.Picker.IsVisible())
	assert.Equal(t, "Genre", m.Picker.Title())

	m, _ = press(m, "d", "r", "a")
	assert.Equal(t, 1, m.Picker.MatchCount())

	m, _ = press(m, "enter")
	assert.False(t, m.Picker.IsVisible())
	assert.Equal(t, "drama", m.Selection.Genre)
	assert.Equal(t, 1, m.Selection.Page)
	assert.Equal(t, []string{"Nayakan", "Pather Panchali", "Sholay"}, titles(m.Current.Matches))
}

func TestModel_PickerAllClearsCriterion(t *testing.T) {
	sel := catalog.NewSelection(0).WithLanguage("tamil")
	m, _ := newTestModel(t, Options{Selection: &sel})
	require.Equal(t, 2, m.Current.Total())

	// cursor starts on the current choice; move to "All Languages"
	m, _ = press(m, "L")
	opt, ok := m.Picker.Selected()
	require.True(t, ok)
	assert.Equal(t, "tamil", opt.Value)

	for i := 0; i < 5; i++ {
		m, _ = press(m, "up")
	}
	m, _ = press(m, "enter")
	assert.Equal(t, catalog.All, m.Selection.Language)
	assert.Equal(t, 4, m.Current.Total())
}

func TestModel_SearchIsDebounced(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, _ = press(m, "/")
	require.True(t, m.SearchBar.Focused())

	m, cmd := press(m, "s", "h", "o")
	require.NotNil(t, cmd)
	assert.Equal(t, "", m.Selection.Query, "query must not apply before the debounce fires")

	// a stale tick is ignored
	updated, _ := m.Update(searchDebounceMsg{seq: m.searchSeq - 1})
	m = updated.(Model)
	assert.Equal(t, "", m.Selection.Query)

	updated, _ = m.Update(searchDebounceMsg{seq: m.searchSeq})
	m = updated.(Model)
	assert.Equal(t, "sho", m.Selection.Query)
	assert.Equal(t, []string{"Sholay"}, titles(m.Current.Matches))
}

func TestModel_SearchEnterAppliesImmediately(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, _ = press(m, "/", "r", "a", "t", "n", "a", "m", "enter")
	assert.False(t, m.SearchBar.Focused())
	assert.Equal(t, "ratnam", m.Selection.Query)
	assert.Equal(t, []string{"Nayakan", "Roja"}, titles(m.Current.Matches))

	// the pending tick for the last keystroke is now stale
	updated, _ := m.Update(searchDebounceMsg{seq: m.searchSeq - 1})
	assert.Equal(t, "ratnam", updated.(Model).Selection.Query)
}

func TestModel_LoadMore(t *testing.T) {
	m, _ := newTestModel(t, Options{PageSize: 3})
	require.Len(t, m.Current.Visible, 3)
	require.Equal(t, 1, m.Current.Remaining)

	m, _ = press(m, " ")
	assert.Len(t, m.Current.Visible, 4)
	assert.Equal(t, 0, m.Current.Remaining)
	assert.Equal(t, 2, m.Selection.Page)

	m, _ = press(m, " ")
	assert.Equal(t, "All movies shown", m.StatusMsg)
	assert.Equal(t, 2, m.Selection.Page)
}

func TestModel_EnterOnLoadMoreRow(t *testing.T) {
	m, _ := newTestModel(t, Options{PageSize: 2})

	m, _ = press(m, "G")
	require.True(t, m.List.OnLoadMore())

	m, _ = press(m, "enter")
	assert.False(t, m.Detail.IsVisible())
	assert.Len(t, m.Current.Visible, 4)
	// cursor stays put and lands on the first newly revealed movie
	assert.Equal(t, "Sholay", m.List.Selected().Title)
}

func TestModel_RemoveFilterAndReset(t *testing.T) {
	sel := catalog.NewSelection(0).WithGenre("drama").WithYear("1975")
	m, _ := newTestModel(t, Options{Selection: &sel})
	require.Equal(t, []string{"Sholay"}, titles(m.Current.Matches))

	m, _ = press(m, "x")
	require.True(t, m.Picker.IsVisible())
	assert.Equal(t, 2, m.Picker.MatchCount())

	// first tag is the genre
	m, _ = press(m, "enter")
	assert.Equal(t, catalog.All, m.Selection.Genre)
	assert.Equal(t, "1975", m.Selection.Year)
	assert.Equal(t, []string{"Sholay"}, titles(m.Current.Matches))

	m, _ = press(m, "R")
	assert.True(t, m.Selection.IsDefault())
	assert.Equal(t, 4, m.Current.Total())
	assert.Equal(t, "All filters cleared", m.StatusMsg)
}

func TestModel_RemoveWithoutFilters(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, _ = press(m, "x")
	assert.False(t, m.Picker.IsVisible())
	assert.Equal(t, "No active filters", m.StatusMsg)
}

func TestModel_RemoveSearchClearsField(t *testing.T) {
	sel := catalog.NewSelection(0).WithQuery("roja")
	m, _ := newTestModel(t, Options{Selection: &sel})
	require.Equal(t, "roja", m.SearchBar.Value())

	m, _ = press(m, "x", "enter")
	assert.Equal(t, "", m.Selection.Query)
	assert.Equal(t, "", m.SearchBar.Value())
	assert.Equal(t, 4, m.Current.Total())
}

func TestModel_DetailAndTrailer(t *testing.T) {
	m, opener := newTestModel(t, Options{})

	m, _ = press(m, "enter")
	require.True(t, m.Detail.IsVisible())
	assert.Equal(t, "Nayakan", m.Detail.Movie().Title)
	assert.Contains(t, m.View(), "Mani Ratnam")

	m, cmd := press(m, "t")
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, TrailerOpenedMsg{Title: "Nayakan"}, msg)
	assert.Equal(t, []string{"https://example.com/nayakan"}, opener.opened)

	m, _ = press(m, "esc")
	assert.False(t, m.Detail.IsVisible())

	// second movie has no trailer
	m, _ = press(m, "j", "enter", "t")
	assert.Equal(t, "Pather Panchali", m.Detail.Movie().Title)
	assert.True(t, m.StatusIsErr)
	assert.Equal(t, "No trailer available", m.StatusMsg)
}

func TestModel_EmptyResultsOfferSuggestions(t *testing.T) {
	sel := catalog.NewSelection(0).WithQuery("nayagan")
	m, _ := newTestModel(t, Options{Selection: &sel})

	assert.True(t, m.Current.Empty())
	view := m.View()
	assert.Contains(t, view, "No movies found")
	assert.Contains(t, view, "Nayakan")
}

func TestModel_CatalogReloadKeepsSelection(t *testing.T) {
	sel := catalog.NewSelection(0).WithGenre("drama")
	m, _ := newTestModel(t, Options{Selection: &sel})
	require.Equal(t, 3, m.Current.Total())

	updated, cmd := m.Update(CatalogLoadedMsg{Movies: fixture()[:2], Reload: true})
	m = updated.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, "drama", m.Selection.Genre)
	assert.Equal(t, []string{"Nayakan"}, titles(m.Current.Matches))
	assert.Contains(t, m.StatusMsg, "reloaded")
}

func TestModel_CatalogChangedReloads(t *testing.T) {
	events := make(chan struct{}, 1)
	engine, err := catalog.NewEngine(fixture(), nil)
	require.NoError(t, err)
	m := NewModel(engine, &fakeLoader{movies: fixture()[:1]}, nil, events, Options{CatalogPath: "movies.json"}, nil)

	require.NotNil(t, m.Init())

	_, cmd := m.Update(CatalogChangedMsg{})
	require.NotNil(t, cmd)
}

func TestModel_LoadsCatalogOnInitWithoutEngine(t *testing.T) {
	m := NewModel(nil, &fakeLoader{movies: fixture()}, nil, nil, Options{CatalogPath: "movies.json"}, nil)
	assert.True(t, m.Loading)

	cmd := m.Init()
	require.NotNil(t, cmd)

	updated, _ := m.Update(CatalogLoadedMsg{Movies: fixture()})
	m = updated.(Model)
	assert.False(t, m.Loading)
	assert.Equal(t, 4, m.Current.Total())
}

func TestModel_ErrorShowsStatus(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	updated, cmd := m.Update(ErrMsg{Err: errors.New("boom"), Context: "loading catalog"})
	m = updated.(Model)
	assert.NotNil(t, cmd)
	assert.True(t, m.StatusIsErr)
	assert.Equal(t, "loading catalog: boom", m.StatusMsg)

	updated, _ = m.Update(ClearStatusMsg{})
	assert.Equal(t, "", updated.(Model).StatusMsg)
}

func TestModel_HelpScreen(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m, _ = press(m, "?")
	assert.Equal(t, StateHelp, m.State)
	assert.Contains(t, m.View(), "load more")

	m, _ = press(m, "q")
	assert.Equal(t, StateBrowsing, m.State)
}

func TestLoadCatalogCmd(t *testing.T) {
	for _, tc := range []struct {
		name   string
		loader *fakeLoader
		check  func(t *testing.T, msg tea.Msg)
	}{
		{
			name:   "loaded",
			loader: &fakeLoader{movies: fixture()},
			check: func(t *testing.T, msg tea.Msg) {
				loaded, ok := msg.(CatalogLoadedMsg)
				require.True(t, ok)
				assert.Len(t, loaded.Movies, 4)
				assert.True(t, loaded.Reload)
				assert.Equal(t, "movies.json", loaded.Info.Source)
			},
		},
		{
			name:   "error",
			loader: &fakeLoader{err: domain.ErrInvalidCatalog},
			check: func(t *testing.T, msg tea.Msg) {
				errMsg, ok := msg.(ErrMsg)
				require.True(t, ok)
				assert.ErrorIs(t, errMsg.Err, domain.ErrInvalidCatalog)
				assert.Equal(t, "loading catalog", errMsg.Context)
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, LoadCatalogCmd(tc.loader, "movies.json", true)())
		})
	}
}

func TestWatchCatalogCmd(t *testing.T) {
	assert.Nil(t, WatchCatalogCmd(nil))

	events := make(chan struct{}, 1)
	events <- struct{}{}
	assert.Equal(t, CatalogChangedMsg{}, WatchCatalogCmd(events)())

	close(events)
	assert.Nil(t, WatchCatalogCmd(events)())
}
