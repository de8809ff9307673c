package catalog

import (
	"fmt"
	"strings"

	"github.com/mmcdole/cinephile/internal/domain"
)

// All is the sentinel token meaning a criterion is unconstrained
const All = "all"

// DefaultPageSize is the number of movies revealed per "load more"
const DefaultPageSize = 50

// FilterKind identifies one selection criterion
type FilterKind int

const (
	FilterSearch FilterKind = iota
	FilterGenre
	FilterLanguage
	FilterDirector
	FilterActor
	FilterMusic
	FilterYear
)

// FilterKinds lists every criterion in display order
var FilterKinds = []FilterKind{
	FilterSearch, FilterGenre, FilterLanguage, FilterDirector,
	FilterActor, FilterMusic, FilterYear,
}

// String returns the criterion's identifier
func (k FilterKind) String() string {
	switch k {
	case FilterSearch:
		return "search"
	case FilterGenre:
		return "genre"
	case FilterLanguage:
		return "language"
	case FilterDirector:
		return "director"
	case FilterActor:
		return "actor"
	case FilterMusic:
		return "music"
	case FilterYear:
		return "year"
	default:
		return "unknown"
	}
}

// ParseFilterKind maps an identifier produced by String back to its kind
func ParseFilterKind(s string) (FilterKind, error) {
	for _, k := range FilterKinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown filter %q", s)
}

// Selection is the user's current narrowing of the catalog.
// It is a value: every With* method returns an updated copy.
type Selection struct {
	Query         string
	Genre         string
	Language      string
	Director      string
	Actor         string
	MusicDirector string
	Year          string
	Page          int
	PageSize      int
}

// NewSelection returns an unconstrained selection on page 1.
// A non-positive pageSize falls back to DefaultPageSize.
func NewSelection(pageSize int) Selection {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Selection{
		Genre:         All,
		Language:      All,
		Director:      All,
		Actor:         All,
		MusicDirector: All,
		Year:          All,
		Page:          1,
		PageSize:      pageSize,
	}
}

// normalized fills zero fields with their defaults
func (s Selection) normalized() Selection {
	fill := func(v *string) {
		if *v == "" {
			*v = All
		}
	}
	fill(&s.Genre)
	fill(&s.Language)
	fill(&s.Director)
	fill(&s.Actor)
	fill(&s.MusicDirector)
	fill(&s.Year)
	if s.Page < 1 {
		s.Page = 1
	}
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	return s
}

// With returns a copy with one criterion set and the page reset to 1.
// An empty value clears the criterion.
func (s Selection) With(kind FilterKind, value string) Selection {
	s = s.normalized()
	if value == "" && kind != FilterSearch {
		value = All
	}
	switch kind {
	case FilterSearch:
		s.Query = strings.TrimSpace(value)
	case FilterGenre:
		s.Genre = value
	case FilterLanguage:
		s.Language = value
	case FilterDirector:
		s.Director = value
	case FilterActor:
		s.Actor = value
	case FilterMusic:
		s.MusicDirector = value
	case FilterYear:
		s.Year = value
	}
	s.Page = 1
	return s
}

func (s Selection) WithQuery(q string) Selection         { return s.With(FilterSearch, q) }
func (s Selection) WithGenre(g string) Selection         { return s.With(FilterGenre, g) }
func (s Selection) WithLanguage(l string) Selection      { return s.With(FilterLanguage, l) }
func (s Selection) WithDirector(d string) Selection      { return s.With(FilterDirector, d) }
func (s Selection) WithActor(a string) Selection         { return s.With(FilterActor, a) }
func (s Selection) WithMusicDirector(m string) Selection { return s.With(FilterMusic, m) }
func (s Selection) WithYear(y string) Selection          { return s.With(FilterYear, y) }

// Without clears a single criterion and resets the page
func (s Selection) Without(kind FilterKind) Selection {
	if kind == FilterSearch {
		return s.With(kind, "")
	}
	return s.With(kind, All)
}

// Reset clears every criterion, keeping the page size
func (s Selection) Reset() Selection {
	return NewSelection(s.PageSize)
}

// LoadMore advances one page without touching any criterion
func (s Selection) LoadMore() Selection {
	s = s.normalized()
	s.Page++
	return s
}

// Value returns the token currently selected for kind
func (s Selection) Value(kind FilterKind) string {
	s = s.normalized()
	switch kind {
	case FilterSearch:
		return s.Query
	case FilterGenre:
		return s.Genre
	case FilterLanguage:
		return s.Language
	case FilterDirector:
		return s.Director
	case FilterActor:
		return s.Actor
	case FilterMusic:
		return s.MusicDirector
	case FilterYear:
		return s.Year
	default:
		return ""
	}
}

// IsActive reports whether kind constrains the view
func (s Selection) IsActive(kind FilterKind) bool {
	v := s.Value(kind)
	if kind == FilterSearch {
		return v != ""
	}
	return v != All
}

// IsDefault reports whether no criterion is active
func (s Selection) IsDefault() bool {
	for _, k := range FilterKinds {
		if s.IsActive(k) {
			return false
		}
	}
	return true
}

// ActiveFilter describes one active criterion for display as a removable tag
type ActiveFilter struct {
	Kind  FilterKind
	Label string
}

// ActiveFilters lists the active criteria in display order
func (s Selection) ActiveFilters() []ActiveFilter {
	var filters []ActiveFilter
	for _, k := range FilterKinds {
		if !s.IsActive(k) {
			continue
		}
		filters = append(filters, ActiveFilter{Kind: k, Label: filterLabel(k, s.Value(k))})
	}
	return filters
}

func filterLabel(kind FilterKind, value string) string {
	switch kind {
	case FilterSearch:
		return `"` + value + `"`
	case FilterGenre, FilterLanguage:
		return domain.Capitalize(value)
	default:
		return value
	}
}
