package queries

import (
	"errors"

	"github.com/smaikl/GLG-bot/internal/pkg/errs"
	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery asks for one page of the board of orders nobody has
// accepted yet.
//
// Example:
//
//	query, err := NewGetAvailableOrdersQuery(2)
//	if err != nil {
//	    return err
//	}
//
//	page, err := handler.Handle(ctx, query)
//	for _, o := range page.Items {
//	    fmt.Printf("#%d %s -> %s\n", o.ID(), o.Cargo().PickupAddress, o.Cargo().DeliveryAddress)
//	}
type GetAvailableOrdersQuery struct {
	page int

	guard guard.ConstructorGuard
}

func NewGetAvailableOrdersQuery(page int) (GetAvailableOrdersQuery, error) {
	if page < 1 {
		return GetAvailableOrdersQuery{}, errs.NewValueIsOutOfRangeError("page", page, 1, "last page")
	}
	return GetAvailableOrdersQuery{page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

func (q GetAvailableOrdersQuery) Page() int {
	return q.page
}
