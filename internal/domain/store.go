package domain

// Store handles the local catalog snapshot cache (BoltDB + memory).
// Snapshots are keyed by the catalog source path.
type Store interface {
	// GetCatalog returns the cached records for a source
	GetCatalog(source string) ([]*Movie, bool)

	// SaveCatalog replaces the cached records for a source and records the
	// source's modification time (unix nanoseconds) for freshness checks
	SaveCatalog(source string, movies []*Movie, modTime int64) error

	// IsValid checks if the stored modification time >= modTime
	IsValid(source string, modTime int64) bool

	// Sources lists every cached source path
	Sources() []string

	// === Invalidation ===
	Invalidate(source string)
	InvalidateAll()

	Close() error
}

// CatalogInfo describes a loaded catalog
type CatalogInfo struct {
	Source    string
	Count     int
	FromCache bool
}
