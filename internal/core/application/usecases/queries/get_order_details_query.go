package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
	"github.com/smaikl/GLG-bot/internal/core/ports"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

var ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
	"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
)

// GetOrderDetailsQuery opens a single order on behalf of a viewer.
type GetOrderDetailsQuery struct {
	orderID  int64
	viewerID int64

	guard guard.ConstructorGuard
}

func NewGetOrderDetailsQuery(orderID, viewerID int64) (GetOrderDetailsQuery, error) {
	if err := validateIDs(orderID, viewerID); err != nil {
		return GetOrderDetailsQuery{}, err
	}
	return GetOrderDetailsQuery{orderID: orderID, viewerID: viewerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

func (q GetOrderDetailsQuery) OrderID() int64 {
	return q.orderID
}

func (q GetOrderDetailsQuery) ViewerID() int64 {
	return q.viewerID
}

// GetOrderDetailsQueryResponse carries what the detail card shows. Contacts of
// the counterparty are only filled in for participants of the order.
type GetOrderDetailsQueryResponse struct {
	Order        *order.Order
	Viewer       *user.User
	Actions      []order.Action
	Counterparty *user.User
}

type GetOrderDetailsQueryHandler struct {
	users  ports.UserRepository
	orders ports.OrderRepository
}

func NewGetOrderDetailsQueryHandler(users ports.UserRepository, orders ports.OrderRepository) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{users: users, orders: orders}
}

func (h GetOrderDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDetailsQuery,
) (GetOrderDetailsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	viewer, err := h.users.Get(ctx, query.ViewerID())
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}
	if !o.CanView(viewer.ID(), viewer.Role()) {
		return GetOrderDetailsQueryResponse{}, errs.NewForbiddenErrorWithCause("view order",
			fmt.Errorf("user %d is not a participant of order %d", viewer.ID(), o.ID()))
	}

	resp := GetOrderDetailsQueryResponse{
		Order:   o,
		Viewer:  viewer,
		Actions: order.AvailableActions(o, viewer.ID(), viewer.Role()),
	}

	if counterpartyID, ok := o.Counterparty(viewer.ID()); ok {
		counterparty, err := h.users.Get(ctx, counterpartyID)
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return GetOrderDetailsQueryResponse{}, err
		}
		resp.Counterparty = counterparty
	}

	return resp, nil
}

func validateIDs(orderID, userID int64) error {
	var orderErr, userErr error
	if orderID <= 0 {
		orderErr = errs.NewValueIsRequiredError("order id")
	}
	if userID <= 0 {
		userErr = errs.NewValueIsRequiredError("user id")
	}
	return errors.Join(orderErr, userErr)
}
