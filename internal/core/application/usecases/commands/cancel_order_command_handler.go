package commands

import (
	"context"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
	"github.com/smaikl/GLG-bot/internal/core/domain/services"
)

// CancelOrderCommandHandler withdraws a new order. There is no carrier yet, so
// the notifier has nobody to tell.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   TransitionNotifier
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, notifier TransitionNotifier) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return runOrderTransition(ctx, h.uowFactory, h.notifier, orderTransition{
		kind:    services.TransitionCancelled,
		orderID: cmd.OrderID(),
		actorID: cmd.ActorID(),
		apply: func(o *order.Order, actor *user.User) error {
			return o.Cancel(actor.ID())
		},
	})
}
