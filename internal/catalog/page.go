package catalog

import "github.com/mmcdole/cinephile/internal/domain"

// Page exposes the first page*size records of view and how many remain hidden.
// Pages are cumulative: page 2 contains page 1.
func Page(view []*domain.Movie, page, size int) ([]*domain.Movie, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}

	end := page * size
	if end > len(view) {
		end = len(view)
	}
	return view[:end], len(view) - end
}
