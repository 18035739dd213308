package commands

import (
	"errors"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

var ErrUpdateStageCommandIsNotConstructed = errors.New(
	"UpdateStageCommand must be created via NewUpdateStageCommand constructor",
)

// UpdateStageCommand is the assigned carrier reporting progress on an accepted order.
type UpdateStageCommand struct {
	orderID int64
	actorID int64
	stage   order.Stage

	guard guard.ConstructorGuard
}

func NewUpdateStageCommand(orderID, actorID int64, stage order.Stage) (UpdateStageCommand, error) {
	var stageErr error
	if !stage.IsSet() {
		stageErr = errs.NewValueIsRequiredError("stage")
	}
	if err := errors.Join(validateOrderTarget(orderID, actorID), stageErr); err != nil {
		return UpdateStageCommand{}, err
	}

	return UpdateStageCommand{
		orderID: orderID,
		actorID: actorID,
		stage:   stage,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateStageCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStageCommandIsNotConstructed)
}

func (c UpdateStageCommand) OrderID() int64 {
	return c.orderID
}

func (c UpdateStageCommand) ActorID() int64 {
	return c.actorID
}

func (c UpdateStageCommand) Stage() order.Stage {
	return c.stage
}
