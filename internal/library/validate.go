package library

import (
	"fmt"

	"github.com/mmcdole/cinephile/internal/domain"
	"github.com/mmcdole/cinephile/internal/validation"
)

// validateCatalog checks every record and rejects duplicate identifiers.
// The first failure is reported, wrapped in domain.ErrInvalidCatalog.
func validateCatalog(v *validation.Validator, movies []*domain.Movie) error {
	seen := make(map[int]int, len(movies))

	for i, m := range movies {
		if m == nil {
			return fmt.Errorf("%w: record %d is empty", domain.ErrInvalidCatalog, i)
		}
		if err := v.Validate(m); err != nil {
			return fmt.Errorf("%w: record %d (id %d): %w", domain.ErrInvalidCatalog, i, m.ID, err)
		}
		if first, dup := seen[m.ID]; dup {
			return fmt.Errorf("%w: %w %d in records %d and %d",
				domain.ErrInvalidCatalog, domain.ErrDuplicateMovie, m.ID, first, i)
		}
		seen[m.ID] = i
	}
	return nil
}
