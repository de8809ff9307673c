package library

import "github.com/mmcdole/cinephile/internal/domain"

// Queries provides synchronous, cache-only reads.
type Queries struct {
	store domain.Store
}

// NewQueries creates a new Queries instance.
func NewQueries(store domain.Store) *Queries {
	return &Queries{store: store}
}

// Cached returns the last snapshot of a catalog file without touching the file
func (q *Queries) Cached(path string) ([]*domain.Movie, bool) {
	return q.store.GetCatalog(path)
}

// Sources lists every catalog file with a snapshot
func (q *Queries) Sources() []domain.CatalogInfo {
	sources := q.store.Sources()
	infos := make([]domain.CatalogInfo, 0, len(sources))
	for _, src := range sources {
		movies, ok := q.store.GetCatalog(src)
		if !ok {
			continue
		}
		infos = append(infos, domain.CatalogInfo{Source: src, Count: len(movies), FromCache: true})
	}
	return infos
}
