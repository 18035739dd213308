package commands

import (
	"errors"

	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand is the sender closing a delivered order.
type ConfirmDeliveryCommand struct {
	orderID int64
	actorID int64

	guard guard.ConstructorGuard
}

func NewConfirmDeliveryCommand(orderID, actorID int64) (ConfirmDeliveryCommand, error) {
	if err := validateOrderTarget(orderID, actorID); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return ConfirmDeliveryCommand{
		orderID: orderID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

func (c ConfirmDeliveryCommand) OrderID() int64 {
	return c.orderID
}

func (c ConfirmDeliveryCommand) ActorID() int64 {
	return c.actorID
}
