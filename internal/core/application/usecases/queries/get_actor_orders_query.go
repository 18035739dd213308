package queries

import (
	"context"
	"errors"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/core/ports"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

var ErrGetActorOrdersQueryIsNotConstructed = errors.New(
	"GetActorOrdersQuery must be created via NewGetActorOrdersQuery constructor",
)

// GetActorOrdersQuery lists the orders a sender published or a carrier took.
type GetActorOrdersQuery struct {
	userID int64

	guard guard.ConstructorGuard
}

func NewGetActorOrdersQuery(userID int64) (GetActorOrdersQuery, error) {
	if userID <= 0 {
		return GetActorOrdersQuery{}, errs.NewValueIsRequiredError("user id")
	}
	return GetActorOrdersQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetActorOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActorOrdersQueryIsNotConstructed)
}

func (q GetActorOrdersQuery) UserID() int64 {
	return q.userID
}

type GetActorOrdersQueryHandler struct {
	users  ports.UserRepository
	orders ports.OrderRepository
}

func NewGetActorOrdersQueryHandler(users ports.UserRepository, orders ports.OrderRepository) GetActorOrdersQueryHandler {
	return GetActorOrdersQueryHandler{users: users, orders: orders}
}

// Handle returns the orders newest first. The role stored at registration
// decides which side of the order the user is looked up on.
func (h GetActorOrdersQueryHandler) Handle(ctx context.Context, query GetActorOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	u, err := h.users.Get(ctx, query.UserID())
	if err != nil {
		return nil, err
	}

	return h.orders.ListForActor(ctx, u.ID(), u.Role())
}
