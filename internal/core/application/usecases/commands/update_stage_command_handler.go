package commands

import (
	"context"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
	"github.com/smaikl/GLG-bot/internal/core/domain/services"
)

// UpdateStageCommandHandler records a delivery stage. The status stays accepted;
// the sender gets an informational notice.
type UpdateStageCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   TransitionNotifier
}

func NewUpdateStageCommandHandler(uowFactory OrderUoWFactory, notifier TransitionNotifier) UpdateStageCommandHandler {
	return UpdateStageCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h UpdateStageCommandHandler) Handle(ctx context.Context, cmd UpdateStageCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return runOrderTransition(ctx, h.uowFactory, h.notifier, orderTransition{
		kind:    services.TransitionStageReported,
		orderID: cmd.OrderID(),
		actorID: cmd.ActorID(),
		apply: func(o *order.Order, actor *user.User) error {
			return o.SetStage(actor.ID(), cmd.Stage())
		},
	})
}
