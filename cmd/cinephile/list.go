package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/cinephile/internal/catalog"
	"github.com/mmcdole/cinephile/internal/domain"
	"github.com/mmcdole/cinephile/internal/tui/styles"
)

// printList writes the visible window of v as a table, followed by the
// match counts and the active filters
func printList(w io.Writer, v catalog.View, showReason bool) error {
	if v.Empty() {
		_, err := fmt.Fprintln(w, "No movies found")
		return err
	}

	headers := []string{"#", "Title", "Rating", "Year", "Language", "Genres", "Director"}
	if showReason {
		headers = append(headers, "Why")
	}

	rows := make([][]string, 0, len(v.Visible))
	for i, m := range v.Visible {
		row := []string{
			fmt.Sprintf("%d", i+1),
			m.Title,
			m.DisplayRating(),
			m.DisplayYear(),
			m.DisplayLanguage(),
			strings.Join(m.Genres, ", "),
			m.DisplayDirector(),
		}
		if showReason {
			row = append(row, v.Reason(m))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.DimStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			if col == 2 && row >= 0 && row < len(v.Visible) {
				return s.Foreground(styles.RatingColor(v.Visible[row].RatingClass()))
			}
			return s
		})

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}

	summary := fmt.Sprintf("Showing %d of %d", len(v.Visible), v.Total())
	if v.Remaining > 0 {
		summary += fmt.Sprintf(" · %d more (use -page-size)", v.Remaining)
	}
	if filters := v.Selection.ActiveFilters(); len(filters) > 0 {
		labels := make([]string, len(filters))
		for i, f := range filters {
			labels[i] = f.Kind.String() + "=" + f.Label
		}
		summary += " · " + strings.Join(labels, ", ")
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

// printCached lists the cached catalog snapshots
func printCached(w io.Writer, sources []domain.CatalogInfo) {
	if len(sources) == 0 {
		fmt.Fprintln(w, "No cached catalogs")
		return
	}
	for _, info := range sources {
		fmt.Fprintf(w, "%s\t%d movies\n", info.Source, info.Count)
	}
}
