package commands

import (
	"context"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
	"github.com/smaikl/GLG-bot/internal/core/domain/services"
)

// AcceptOrderCommandHandler assigns the acting carrier to a new order.
// Of two carriers racing for the same order exactly one succeeds; the other
// receives errs.ConflictError and the order keeps the first carrier.
//
// Example:
//
//	cmd, _ := NewAcceptOrderCommand(orderID, carrierID)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrConflict):
//	    // somebody else was faster
//	case errors.Is(err, errs.ErrForbidden):
//	    // not a carrier, or the sender of this order
//	}
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   TransitionNotifier
}

func NewAcceptOrderCommandHandler(uowFactory OrderUoWFactory, notifier TransitionNotifier) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return runOrderTransition(ctx, h.uowFactory, h.notifier, orderTransition{
		kind:    services.TransitionAccepted,
		orderID: cmd.OrderID(),
		actorID: cmd.ActorID(),
		apply: func(o *order.Order, actor *user.User) error {
			return o.Accept(actor.ID(), actor.Role())
		},
	})
}
