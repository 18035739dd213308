// Package queries contains read-only operations: the paginated board of open
// orders, a user's own orders, order details with the actions the viewer may
// take, attached documents and profiles. Queries never start a transaction.
package queries

import (
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
)

// PageSize is the number of orders shown per page of the board.
const PageSize = 5

// Page is one slice of a larger result. Page numbers start at 1.
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	TotalItems int
}

func (p Page[T]) HasPrev() bool {
	return p.Number > 1
}

func (p Page[T]) HasNext() bool {
	return p.Number < p.TotalPages
}

// Paginate cuts items into pages of size. A page past the end yields no items
// but correct totals; a page below 1 is errs.ValueIsOutOfRangeError.
func Paginate[T any](items []T, page, size int) (Page[T], error) {
	if size < 1 {
		return Page[T]{}, errs.NewValueIsOutOfRangeError("page size", size, 1, "unbounded")
	}

	total := len(items)
	totalPages := (total + size - 1) / size
	if page < 1 {
		return Page[T]{}, errs.NewValueIsOutOfRangeError("page", page, 1, max(totalPages, 1))
	}

	result := Page[T]{
		Items:      []T{},
		Number:     page,
		TotalPages: totalPages,
		TotalItems: total,
	}

	// Compared before multiplying so a huge page cannot overflow start.
	if page > totalPages {
		return result, nil
	}
	start := (page - 1) * size
	end := min(start+size, total)
	result.Items = items[start:end:end]
	return result, nil
}
