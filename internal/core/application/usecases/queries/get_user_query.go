package queries

import (
	"context"
	"errors"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
	"github.com/smaikl/GLG-bot/internal/core/ports"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

var ErrGetUserQueryIsNotConstructed = errors.New(
	"GetUserQuery must be created via NewGetUserQuery constructor",
)

// GetUserQuery loads a profile. errs.ObjectNotFoundError means the user never registered.
type GetUserQuery struct {
	userID int64

	guard guard.ConstructorGuard
}

func NewGetUserQuery(userID int64) (GetUserQuery, error) {
	if userID <= 0 {
		return GetUserQuery{}, errs.NewValueIsRequiredError("user id")
	}
	return GetUserQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserQuery) Validate() error {
	return q.guard.Validate(ErrGetUserQueryIsNotConstructed)
}

type GetUserQueryHandler struct {
	users ports.UserRepository
}

func NewGetUserQueryHandler(users ports.UserRepository) GetUserQueryHandler {
	return GetUserQueryHandler{users: users}
}

func (h GetUserQueryHandler) Handle(ctx context.Context, query GetUserQuery) (*user.User, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.users.Get(ctx, query.userID)
}
