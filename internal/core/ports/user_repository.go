package ports

import (
	"context"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
)

// UserRepository is the persistence contract for registered users.
type UserRepository interface {
	// Add fails with errs.ConflictError if the user is already registered.
	Add(ctx context.Context, aggregate *user.User) error

	// Get returns errs.ObjectNotFoundError when the user never registered.
	Get(ctx context.Context, id int64) (*user.User, error)

	// Update persists profile changes. The role column is never written.
	Update(ctx context.Context, aggregate *user.User) error
}
