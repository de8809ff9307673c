package catalog

import (
	"fmt"
	"strings"

	"github.com/mmcdole/cinephile/internal/domain"
)

// maxReasons caps how many explanations a card shows
const maxReasons = 2

// ReasonSeparator joins multiple reasons
const ReasonSeparator = " • "

// MatchReason explains in a short phrase why m is in the view for sel.
// It is advisory only and never affects inclusion or order.
func MatchReason(m *domain.Movie, sel Selection) string {
	sel = sel.normalized()
	var reasons []string

	if q := strings.ToLower(sel.Query); q != "" {
		switch searchHit(m, q) {
		case hitTitle:
			reasons = append(reasons, "Title matches your search")
		case hitDirector:
			reasons = append(reasons, "Directed by "+m.Director)
		case hitActor:
			reasons = append(reasons, "Features actor from your search")
		case hitMusic:
			reasons = append(reasons, "Music by "+m.MusicDirector)
		}
	}

	if sel.Genre != All {
		reasons = append(reasons, domain.Capitalize(sel.Genre)+" genre")
	}
	if sel.Language != All {
		reasons = append(reasons, domain.Capitalize(sel.Language)+" cinema")
	}
	if sel.Director != All {
		reasons = append(reasons, "Directed by "+sel.Director)
	}
	if sel.Actor != All {
		reasons = append(reasons, "Starring "+sel.Actor)
	}

	if len(reasons) == 0 {
		genre := m.PrimaryGenre()
		if genre == "" {
			genre = "film"
		}
		industry := m.Industry
		if industry == "" {
			industry = "world cinema"
		}
		return fmt.Sprintf("Highly rated %s from %s", genre, industry)
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return strings.Join(reasons, ReasonSeparator)
}
