package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrCatalogMissing indicates the browser was started without a catalog
	ErrCatalogMissing = errors.New("movie catalog not loaded")

	// ErrMovieNotFound indicates the requested movie does not exist
	ErrMovieNotFound = errors.New("movie not found")

	// ErrInvalidCatalog indicates a catalog file failed to decode or validate
	ErrInvalidCatalog = errors.New("invalid movie catalog")

	// ErrDuplicateMovie indicates two records share an identifier
	ErrDuplicateMovie = errors.New("duplicate movie id")
)
