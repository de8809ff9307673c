package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mmcdole/cinephile/internal/domain"
)

// Facets holds the distinct values offered by each selection control
type Facets struct {
	Genres         []string // lower-cased
	Languages      []string // lower-cased
	Directors      []string
	Actors         []string
	MusicDirectors []string
	Years          []int // newest first
}

// ComputeFacets scans the catalog once. Absent fields are skipped.
func ComputeFacets(movies []*domain.Movie) Facets {
	genres := make(map[string]struct{})
	languages := make(map[string]struct{})
	directors := make(map[string]struct{})
	actors := make(map[string]struct{})
	music := make(map[string]struct{})
	years := make(map[int]struct{})

	for _, m := range movies {
		if m == nil {
			continue
		}
		for _, g := range m.Genres {
			if g != "" {
				genres[strings.ToLower(g)] = struct{}{}
			}
		}
		if m.Language != "" {
			languages[strings.ToLower(m.Language)] = struct{}{}
		}
		if m.Director != "" {
			directors[m.Director] = struct{}{}
		}
		for _, a := range m.Actors {
			if a != "" {
				actors[a] = struct{}{}
			}
		}
		if m.MusicDirector != "" {
			music[m.MusicDirector] = struct{}{}
		}
		if m.Year > 0 {
			years[m.Year] = struct{}{}
		}
	}

	f := Facets{
		Genres:         sortedKeys(genres),
		Languages:      sortedKeys(languages),
		Directors:      sortedKeys(directors),
		Actors:         sortedKeys(actors),
		MusicDirectors: sortedKeys(music),
		Years:          make([]int, 0, len(years)),
	}
	for y := range years {
		f.Years = append(f.Years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(f.Years)))
	return f
}

// Options returns the string choices for kind, without the "all" entry.
// Search has no options.
func (f Facets) Options(kind FilterKind) []string {
	switch kind {
	case FilterGenre:
		return f.Genres
	case FilterLanguage:
		return f.Languages
	case FilterDirector:
		return f.Directors
	case FilterActor:
		return f.Actors
	case FilterMusic:
		return f.MusicDirectors
	case FilterYear:
		out := make([]string, len(f.Years))
		for i, y := range f.Years {
			out[i] = strconv.Itoa(y)
		}
		return out
	default:
		return nil
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
