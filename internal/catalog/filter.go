package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mmcdole/cinephile/internal/domain"
)

// Matches reports whether a movie passes every active criterion of sel.
// A field the movie lacks never satisfies an active criterion.
func Matches(m *domain.Movie, sel Selection) bool {
	sel = sel.normalized()

	if q := strings.ToLower(sel.Query); q != "" && searchHit(m, q) == hitNone {
		return false
	}

	if sel.Genre != All && !hasGenre(m, sel.Genre) {
		return false
	}

	if sel.Language != All && (m.Language == "" || !strings.EqualFold(m.Language, sel.Language)) {
		return false
	}

	if sel.Director != All && (m.Director == "" || m.Director != sel.Director) {
		return false
	}

	if sel.Actor != All && !hasActor(m, sel.Actor) {
		return false
	}

	if sel.MusicDirector != All && (m.MusicDirector == "" || m.MusicDirector != sel.MusicDirector) {
		return false
	}

	if sel.Year != All {
		year, err := strconv.Atoi(strings.TrimSpace(sel.Year))
		if err != nil || m.Year == 0 || m.Year != year {
			return false
		}
	}

	return true
}

// ApplyFilters returns the movies matching sel, highest rated first.
// The catalog slice is never modified; ties keep catalog order.
func ApplyFilters(movies []*domain.Movie, sel Selection) []*domain.Movie {
	result := make([]*domain.Movie, 0, len(movies))
	for _, m := range movies {
		if m != nil && Matches(m, sel) {
			result = append(result, m)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Rating > result[j].Rating
	})
	return result
}

// searchHitKind records which field a query matched, in priority order
type searchHitKind int

const (
	hitNone searchHitKind = iota
	hitTitle
	hitDirector
	hitActor
	hitMusic
)

// searchHit expects q already lower-cased
func searchHit(m *domain.Movie, q string) searchHitKind {
	switch {
	case strings.Contains(strings.ToLower(m.Title), q):
		return hitTitle
	case m.Director != "" && strings.Contains(strings.ToLower(m.Director), q):
		return hitDirector
	}
	for _, a := range m.Actors {
		if strings.Contains(strings.ToLower(a), q) {
			return hitActor
		}
	}
	if m.MusicDirector != "" && strings.Contains(strings.ToLower(m.MusicDirector), q) {
		return hitMusic
	}
	return hitNone
}

func hasGenre(m *domain.Movie, genre string) bool {
	for _, g := range m.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

func hasActor(m *domain.Movie, actor string) bool {
	for _, a := range m.Actors {
		if a == actor {
			return true
		}
	}
	return false
}
