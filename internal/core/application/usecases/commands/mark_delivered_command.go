package commands

import (
	"errors"

	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand is the assigned carrier reporting the cargo handed over.
type MarkDeliveredCommand struct {
	orderID int64
	actorID int64

	guard guard.ConstructorGuard
}

func NewMarkDeliveredCommand(orderID, actorID int64) (MarkDeliveredCommand, error) {
	if err := validateOrderTarget(orderID, actorID); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return MarkDeliveredCommand{
		orderID: orderID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

func (c MarkDeliveredCommand) OrderID() int64 {
	return c.orderID
}

func (c MarkDeliveredCommand) ActorID() int64 {
	return c.actorID
}
