package commands

import (
	"context"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
	"github.com/smaikl/GLG-bot/internal/core/domain/services"
)

// MarkDeliveredCommandHandler moves an accepted order to delivered. Only the
// assigned carrier may do so; the sender is asked to confirm.
type MarkDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   TransitionNotifier
}

func NewMarkDeliveredCommandHandler(uowFactory OrderUoWFactory, notifier TransitionNotifier) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return runOrderTransition(ctx, h.uowFactory, h.notifier, orderTransition{
		kind:    services.TransitionDelivered,
		orderID: cmd.OrderID(),
		actorID: cmd.ActorID(),
		apply: func(o *order.Order, actor *user.User) error {
			return o.MarkDelivered(actor.ID())
		},
	})
}
