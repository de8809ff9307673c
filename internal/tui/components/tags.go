package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinephile/internal/catalog"
	"github.com/mmcdole/cinephile/internal/tui/styles"
)

// TagLabel is the text of one removable filter chip
func TagLabel(f catalog.ActiveFilter) string {
	if f.Kind == catalog.FilterSearch {
		return f.Label
	}
	return f.Kind.String() + ": " + f.Label
}

// RenderFilterTags renders the active filters as a single line of chips.
// Chips that do not fit collapse into a "+N" badge.
func RenderFilterTags(filters []catalog.ActiveFilter, width int) string {
	if len(filters) == 0 {
		return styles.DimStyle.Render("No filters · g genre  L language  d director  a actor  m music  y year")
	}

	hint := styles.AccentStyle.Render("x") + styles.DimStyle.Render(" remove  ") +
		styles.AccentStyle.Render("R") + styles.DimStyle.Render(" reset")
	available := width - lipgloss.Width(hint) - 1

	var b strings.Builder
	used := 0
	for i, f := range filters {
		chip := styles.TagStyle.Render(TagLabel(f) + " ×")
		chipWidth := lipgloss.Width(chip)
		rest := len(filters) - i
		// keep room for the overflow badge unless this is the last chip
		reserve := 0
		if rest > 1 {
			reserve = 5
		}
		if used+chipWidth+reserve > available {
			badge := styles.DimBadgeStyle.Render("+" + strconv.Itoa(rest))
			b.WriteString(badge)
			used += lipgloss.Width(badge)
			break
		}
		b.WriteString(chip)
		used += chipWidth
	}

	gap := width - used - lipgloss.Width(hint)
	if gap < 1 {
		gap = 1
	}
	return b.String() + strings.Repeat(" ", gap) + hint
}
