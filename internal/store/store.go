package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/cinephile/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketCatalogs = []byte("catalogs")
	bucketMeta     = []byte("meta")
)

// snapshot is the serialized form of one cached catalog
type snapshot struct {
	Source  string          `json:"source"`
	ModTime int64           `json:"mod_time"`
	Movies  []*domain.Movie `json:"movies"`
}

// CatalogStore implements domain.Store using BoltDB.
type CatalogStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewCatalogStore opens (or creates) the snapshot database under cacheDir.
// An empty cacheDir yields a memory-only store.
func NewCatalogStore(cacheDir string) (*CatalogStore, error) {
	if cacheDir == "" {
		// Memory-only mode (no persistence)
		return &CatalogStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(cacheDir, "cinephile.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketCatalogs, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &CatalogStore{db: db, cache: make(map[string][]byte)}, nil
}

// sourceKey normalizes a source path into a stable bucket key
func sourceKey(source string) string {
	abs, err := filepath.Abs(source)
	if err != nil {
		abs = source
	}
	hash := sha256.Sum256([]byte(filepath.Clean(abs)))
	return hex.EncodeToString(hash[:8])
}

func (s *CatalogStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *CatalogStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *CatalogStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *CatalogStore) delete(bucket []byte, key string) {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

// === Catalogs ===

func (s *CatalogStore) GetCatalog(source string) ([]*domain.Movie, bool) {
	var snap snapshot
	if !s.get(bucketCatalogs, sourceKey(source), &snap) {
		return nil, false
	}
	return snap.Movies, true
}

func (s *CatalogStore) SaveCatalog(source string, movies []*domain.Movie, modTime int64) error {
	key := sourceKey(source)
	if err := s.set(bucketCatalogs, key, snapshot{Source: source, ModTime: modTime, Movies: movies}); err != nil {
		return err
	}
	// Timestamp kept separately so freshness checks skip decoding the records
	return s.set(bucketMeta, key, modTime)
}

func (s *CatalogStore) IsValid(source string, modTime int64) bool {
	var storedTS int64
	if !s.get(bucketMeta, sourceKey(source), &storedTS) {
		return false
	}
	return storedTS >= modTime
}

// Sources returns the original paths of all cached catalogs, sorted
func (s *CatalogStore) Sources() []string {
	var sources []string

	if s.db == nil {
		s.mu.RLock()
		prefix := string(bucketCatalogs) + ":"
		for k, data := range s.cache {
			if !strings.HasPrefix(k, prefix) {
				continue
			}
			var snap snapshot
			if json.Unmarshal(data, &snap) == nil {
				sources = append(sources, snap.Source)
			}
		}
		s.mu.RUnlock()
		sort.Strings(sources)
		return sources
	}

	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCatalogs)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var snap snapshot
			if json.Unmarshal(v, &snap) == nil {
				sources = append(sources, snap.Source)
			}
			return nil
		})
	})
	sort.Strings(sources)
	return sources
}

// === Invalidation ===

func (s *CatalogStore) Invalidate(source string) {
	key := sourceKey(source)
	s.delete(bucketCatalogs, key)
	s.delete(bucketMeta, key)
}

func (s *CatalogStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		// Cursor deletes skip keys, so drop and recreate the buckets instead
		for _, bucket := range [][]byte{bucketCatalogs, bucketMeta} {
			if err := tx.DeleteBucket(bucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}
