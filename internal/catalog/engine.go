package catalog

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/cinephile/internal/domain"
)

// Engine binds a read-only catalog to the filter operations.
// It precomputes facets and an id index once.
type Engine struct {
	movies []*domain.Movie
	byID   map[int]*domain.Movie
	facets Facets
	logger *slog.Logger
}

// NewEngine creates an engine over movies. A nil catalog is the one fatal
// precondition and yields domain.ErrCatalogMissing; an empty one is allowed.
func NewEngine(movies []*domain.Movie, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if movies == nil {
		return nil, domain.ErrCatalogMissing
	}

	byID := make(map[int]*domain.Movie, len(movies))
	for _, m := range movies {
		if m != nil {
			byID[m.ID] = m
		}
	}

	e := &Engine{
		movies: movies,
		byID:   byID,
		facets: ComputeFacets(movies),
		logger: logger,
	}
	logger.Debug("catalog engine ready", "movies", len(movies),
		"directors", len(e.facets.Directors), "actors", len(e.facets.Actors))
	return e, nil
}

// Movies returns the full catalog in its original order
func (e *Engine) Movies() []*domain.Movie {
	return e.movies
}

// Len returns the catalog size
func (e *Engine) Len() int {
	return len(e.movies)
}

// Facets returns the choices for every selection control
func (e *Engine) Facets() Facets {
	return e.facets
}

// Lookup returns a single movie for the detail view
func (e *Engine) Lookup(id int) (*domain.Movie, error) {
	m, ok := e.byID[id]
	if !ok {
		return nil, fmt.Errorf("movie %d: %w", id, domain.ErrMovieNotFound)
	}
	return m, nil
}

// Apply filters and sorts the catalog for sel and opens the page window
func (e *Engine) Apply(sel Selection) View {
	sel = sel.normalized()
	matched := ApplyFilters(e.movies, sel)
	e.logger.Debug("applied selection", "query", sel.Query, "active", len(sel.ActiveFilters()), "matches", len(matched))
	return newView(sel, matched)
}

// View is the outcome of applying a selection: the full ordered match
// list plus the currently revealed window.
type View struct {
	Selection Selection
	Matches   []*domain.Movie
	Visible   []*domain.Movie
	Remaining int
}

func newView(sel Selection, matches []*domain.Movie) View {
	visible, remaining := Page(matches, sel.Page, sel.PageSize)
	return View{
		Selection: sel,
		Matches:   matches,
		Visible:   visible,
		Remaining: remaining,
	}
}

// Total is the number of matching movies
func (v View) Total() int {
	return len(v.Matches)
}

// Empty reports the "no results" condition
func (v View) Empty() bool {
	return len(v.Matches) == 0
}

// NextBatch is how many movies the next "load more" reveals
func (v View) NextBatch() int {
	if v.Remaining < v.Selection.PageSize {
		return v.Remaining
	}
	return v.Selection.PageSize
}

// LoadMore reveals the next page without refiltering
func (v View) LoadMore() View {
	if v.Remaining == 0 {
		return v
	}
	return newView(v.Selection.LoadMore(), v.Matches)
}

// Reason explains why m appears in this view
func (v View) Reason(m *domain.Movie) string {
	return MatchReason(m, v.Selection)
}
