// Package ports defines the contracts between the freight core and its adapters:
// persistence, outbound messaging and file storage.
package ports

import (
	"context"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract for order aggregates.
type OrderRepository interface {
	// Add inserts a new order and assigns its id through order.SetID.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// Update replaces every mutable field of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateIfStatus writes the aggregate only if the stored status still equals
	// expected. When no row matches it returns errs.ConflictError, which makes
	// the read-check-write of a lifecycle transition atomic.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// ListByStatus returns orders newest first, ties broken by id descending.
	ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// ListForActor returns the orders a user published (sender) or took (carrier),
	// newest first.
	ListForActor(ctx context.Context, userID int64, role kernel.Role) ([]*order.Order, error)
}
