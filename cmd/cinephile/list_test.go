package main

import (
	"bytes"
	"testing"

	"github.com/mmcdole/cinephile/internal/catalog"
	"github.com/mmcdole/cinephile/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listFixture() []*domain.Movie {
	return []*domain.Movie{
		{ID: 1, Title: "Nayakan", Year: 1987, Language: "tamil", Rating: 8.7, Genres: []string{"crime"}, Director: "Mani Ratnam"},
		{ID: 2, Title: "Roja", Year: 1992, Language: "tamil", Rating: 8.1, Genres: []string{"romance"}, Director: "Mani Ratnam"},
		{ID: 3, Title: "Sholay", Year: 1975, Language: "hindi", Rating: 8.2, Genres: []string{"action"}, Director: "Ramesh Sippy"},
	}
}

func TestFlagsSelection(t *testing.T) {
	f := flags{search: "  ratnam ", genre: "crime", year: "1987"}
	sel := f.selection(10)

	assert.Equal(t, "ratnam", sel.Query)
	assert.Equal(t, "crime", sel.Genre)
	assert.Equal(t, "1987", sel.Year)
	assert.Equal(t, catalog.All, sel.Director)
	assert.Equal(t, 10, sel.PageSize)
	assert.Equal(t, 1, sel.Page)
}

func TestPrintList(t *testing.T) {
	engine, err := catalog.NewEngine(listFixture(), nil)
	require.NoError(t, err)

	for _, tc := range []struct {
		name     string
		sel      catalog.Selection
		reason   bool
		contains []string
		excludes []string
	}{
		{
			name:     "all movies",
			sel:      catalog.NewSelection(10),
			contains: []string{"Nayakan", "Sholay", "Roja", "Showing 3 of 3"},
		},
		{
			name:     "paged",
			sel:      catalog.NewSelection(2),
			contains: []string{"Nayakan", "Sholay", "Showing 2 of 3", "1 more"},
			excludes: []string{"Roja"},
		},
		{
			name:     "filtered with reasons",
			sel:      catalog.NewSelection(10).WithDirector("Mani Ratnam"),
			reason:   true,
			contains: []string{"Directed by Mani Ratnam", "director=Mani Ratnam"},
			excludes: []string{"Sholay"},
		},
		{
			name:     "no results",
			sel:      catalog.NewSelection(10).WithYear("2001"),
			contains: []string{"No movies found"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, printList(&buf, engine.Apply(tc.sel), tc.reason))

			out := buf.String()
			for _, s := range tc.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tc.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestPrintCached(t *testing.T) {
	var buf bytes.Buffer
	printCached(&buf, nil)
	assert.Equal(t, "No cached catalogs\n", buf.String())

	buf.Reset()
	printCached(&buf, []domain.CatalogInfo{{Source: "/tmp/movies.json", Count: 3, FromCache: true}})
	assert.Equal(t, "/tmp/movies.json\t3 movies\n", buf.String())
}
