package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/mmcdole/cinephile/internal/domain"
	"github.com/mmcdole/cinephile/internal/validation"
)

// Service loads catalog files through the snapshot store.
type Service struct {
	store     domain.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewService creates a new library service.
func NewService(store domain.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, validator: validation.New(), logger: logger}
}

// Load returns the catalog at path, served from the snapshot store when the
// file has not changed since it was last decoded.
func (s *Service) Load(ctx context.Context, path string) ([]*domain.Movie, domain.CatalogInfo, error) {
	return s.load(ctx, path, false)
}

// Import decodes and validates path regardless of freshness and replaces
// its snapshot.
func (s *Service) Import(ctx context.Context, path string) ([]*domain.Movie, domain.CatalogInfo, error) {
	return s.load(ctx, path, true)
}

func (s *Service) load(ctx context.Context, path string, force bool) ([]*domain.Movie, domain.CatalogInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.CatalogInfo{}, err
	}
	if path == "" {
		return nil, domain.CatalogInfo{}, domain.ErrCatalogMissing
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.CatalogInfo{}, fmt.Errorf("%s: %w", path, domain.ErrCatalogMissing)
	}
	if err != nil {
		return nil, domain.CatalogInfo{}, fmt.Errorf("failed to stat catalog: %w", err)
	}
	modTime := info.ModTime().UnixNano()

	// 1. Freshness check
	if !force && s.store.IsValid(path, modTime) {
		if movies, ok := s.store.GetCatalog(path); ok {
			s.logger.Debug("catalog cache fresh", "path", path, "count", len(movies))
			return movies, domain.CatalogInfo{Source: path, Count: len(movies), FromCache: true}, nil
		}
	}

	// 2. Decode and validate
	s.logger.Debug("decoding catalog", "path", path, "forced", force)
	movies, err := s.decodeFile(path)
	if err != nil {
		s.logger.Error("failed to load catalog", "path", path, "error", err)
		return nil, domain.CatalogInfo{}, err
	}

	if err := s.store.SaveCatalog(path, movies, modTime); err != nil {
		s.logger.Error("failed to save catalog snapshot", "error", err, "path", path)
	}
	s.logger.Info("loaded catalog", "path", path, "count", len(movies))
	return movies, domain.CatalogInfo{Source: path, Count: len(movies)}, nil
}

func (s *Service) decodeFile(path string) ([]*domain.Movie, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	movies, err := Decode(f, format)
	if err != nil {
		return nil, err
	}
	if err := validateCatalog(s.validator, movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Invalidate drops the snapshot for one catalog file
func (s *Service) Invalidate(path string) {
	s.store.Invalidate(path)
	s.logger.Info("invalidated catalog cache", "path", path)
}

// InvalidateAll drops every snapshot
func (s *Service) InvalidateAll() {
	s.store.InvalidateAll()
	s.logger.Info("invalidated all cache")
}
