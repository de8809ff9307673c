package library

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/cinephile/internal/domain"
	"github.com/mmcdole/cinephile/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `[
  {"id": 1, "title": "Nayakan", "year": 1987, "rating": 8.7, "genres": ["crime"], "director": "Mani Ratnam"},
  {"id": 2, "title": "Roja", "year": 1992, "rating": 8.1, "musicDirector": "A. R. Rahman",
   "trailerUrl": "https://www.youtube.com/watch?v=roja"}
]`

const catalogYAML = `movies:
  - id: 1
    title: Nayakan
    year: 1987
    rating: 8.7
    actors: [Kamal Haasan]
  - id: 2
    title: Roja
    musicDirector: A. R. Rahman
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newService(t *testing.T) *Service {
	t.Helper()
	s, err := store.NewCatalogStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewService(s, nil)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		input   string
		want    []string
		wantErr bool
	}{
		{"json list", FormatJSON, catalogJSON, []string{"Nayakan", "Roja"}, false},
		{"json document", FormatJSON, `{"movies": [{"id": 7, "title": "Drishyam"}]}`, []string{"Drishyam"}, false},
		{"json empty list", FormatJSON, `[]`, []string{}, false},
		{"json malformed", FormatJSON, `[{"id": 1,`, nil, true},
		{"yaml document", FormatYAML, catalogYAML, []string{"Nayakan", "Roja"}, false},
		{"yaml list", FormatYAML, "- id: 3\n  title: Sholay\n", []string{"Sholay"}, false},
		{"yaml empty", FormatYAML, "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movies, err := Decode(strings.NewReader(tt.input), tt.format)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
				return
			}
			require.NoError(t, err)

			titles := make([]string, len(movies))
			for i, m := range movies {
				titles[i] = m.Title
			}
			assert.Equal(t, tt.want, titles)
		})
	}

	t.Run("field names", func(t *testing.T) {
		movies, err := Decode(strings.NewReader(catalogJSON), FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "A. R. Rahman", movies[1].MusicDirector)
		assert.True(t, movies[1].HasTrailer())

		movies, err = Decode(strings.NewReader(catalogYAML), FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, []string{"Kamal Haasan"}, movies[0].Actors)
		assert.Equal(t, "A. R. Rahman", movies[1].MusicDirector)
	})
}

func TestFormatFor(t *testing.T) {
	for path, want := range map[string]Format{
		"movies.json": FormatJSON,
		"movies.YAML": FormatYAML,
		"movies.yml":  FormatYAML,
	} {
		got, err := FormatFor(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFor("movies.csv")
	assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes then serves snapshot", func(t *testing.T) {
		svc := newService(t)
		path := writeFile(t, t.TempDir(), "movies.json", catalogJSON)

		movies, info, err := svc.Load(ctx, path)
		require.NoError(t, err)
		assert.Len(t, movies, 2)
		assert.False(t, info.FromCache)
		assert.Equal(t, 2, info.Count)

		movies, info, err = svc.Load(ctx, path)
		require.NoError(t, err)
		assert.Len(t, movies, 2)
		assert.True(t, info.FromCache)
	})

	t.Run("changed file is decoded again", func(t *testing.T) {
		svc := newService(t)
		path := writeFile(t, t.TempDir(), "movies.json", catalogJSON)

		_, _, err := svc.Load(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte(`[{"id": 9, "title": "Kireedam"}]`), 0644))
		later := time.Now().Add(time.Hour)
		require.NoError(t, os.Chtimes(path, later, later))

		movies, info, err := svc.Load(ctx, path)
		require.NoError(t, err)
		assert.False(t, info.FromCache)
		require.Len(t, movies, 1)
		assert.Equal(t, "Kireedam", movies[0].Title)
	})

	t.Run("import ignores freshness", func(t *testing.T) {
		svc := newService(t)
		path := writeFile(t, t.TempDir(), "movies.yaml", catalogYAML)

		_, _, err := svc.Load(ctx, path)
		require.NoError(t, err)

		_, info, err := svc.Import(ctx, path)
		require.NoError(t, err)
		assert.False(t, info.FromCache)
	})

	t.Run("missing file", func(t *testing.T) {
		svc := newService(t)
		_, _, err := svc.Load(ctx, filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorIs(t, err, domain.ErrCatalogMissing)

		_, _, err = svc.Load(ctx, "")
		assert.ErrorIs(t, err, domain.ErrCatalogMissing)
	})

	t.Run("cancelled context", func(t *testing.T) {
		svc := newService(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, _, err := svc.Load(cctx, "movies.json")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestService_LoadRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name    string
		content string
		dup     bool
	}{
		{"missing title", `[{"id": 1}]`, false},
		{"zero id", `[{"id": 0, "title": "A"}]`, false},
		{"rating out of range", `[{"id": 1, "title": "A", "rating": 12}]`, false},
		{"year out of range", `[{"id": 1, "title": "A", "year": 20}]`, false},
		{"bad trailer url", `[{"id": 1, "title": "A", "trailerUrl": "youtube"}]`, false},
		{"null record", `[null]`, false},
		{"duplicate id", `[{"id": 1, "title": "A"}, {"id": 1, "title": "B"}]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t)
			path := writeFile(t, t.TempDir(), "movies.json", tt.content)

			_, _, err := svc.Load(context.Background(), path)
			assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
			if tt.dup {
				assert.ErrorIs(t, err, domain.ErrDuplicateMovie)
			}
		})
	}
}

func TestQueries(t *testing.T) {
	s, err := store.NewCatalogStore("")
	require.NoError(t, err)
	svc := NewService(s, nil)
	q := NewQueries(s)

	path := writeFile(t, t.TempDir(), "movies.json", catalogJSON)

	_, ok := q.Cached(path)
	assert.False(t, ok)

	_, _, err = svc.Load(context.Background(), path)
	require.NoError(t, err)

	movies, ok := q.Cached(path)
	require.True(t, ok)
	assert.Len(t, movies, 2)

	sources := q.Sources()
	require.Len(t, sources, 1)
	assert.Equal(t, path, sources[0].Source)
	assert.Equal(t, 2, sources[0].Count)

	svc.InvalidateAll()
	assert.Empty(t, q.Sources())
}
