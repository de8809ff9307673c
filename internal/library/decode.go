package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mmcdole/cinephile/internal/domain"
	"gopkg.in/yaml.v3"
)

// Format identifies a catalog file encoding
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFor picks the encoding from the file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: unsupported file type %q", domain.ErrInvalidCatalog, filepath.Ext(path))
	}
}

// document is the wrapped catalog form: {"movies": [...]}
type document struct {
	Movies []*domain.Movie `json:"movies" yaml:"movies"`
}

// Decode reads a catalog. Both a bare list of records and a document with a
// top-level "movies" list are accepted.
func Decode(r io.Reader, format Format) ([]*domain.Movie, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var movies []*domain.Movie
	switch format {
	case FormatYAML:
		movies, err = decodeYAML(data)
	default:
		movies, err = decodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidCatalog, format, err)
	}

	if movies == nil {
		movies = []*domain.Movie{}
	}
	return movies, nil
}

func decodeJSON(data []byte) ([]*domain.Movie, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var movies []*domain.Movie
		err := json.Unmarshal(trimmed, &movies)
		return movies, err
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.Movies, nil
}

func decodeYAML(data []byte) ([]*domain.Movie, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	if root.Content[0].Kind == yaml.SequenceNode {
		var movies []*domain.Movie
		err := root.Content[0].Decode(&movies)
		return movies, err
	}

	var doc document
	if err := root.Content[0].Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Movies, nil
}
