package commands

import (
	"context"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
	"github.com/smaikl/GLG-bot/internal/core/domain/services"
)

// ConfirmDeliveryCommandHandler completes a delivered order. Confirming an order
// in any other status is a conflict and leaves it unchanged.
type ConfirmDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   TransitionNotifier
}

func NewConfirmDeliveryCommandHandler(uowFactory OrderUoWFactory, notifier TransitionNotifier) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return runOrderTransition(ctx, h.uowFactory, h.notifier, orderTransition{
		kind:    services.TransitionCompleted,
		orderID: cmd.OrderID(),
		actorID: cmd.ActorID(),
		apply: func(o *order.Order, actor *user.User) error {
			return o.ConfirmDelivery(actor.ID())
		},
	})
}
