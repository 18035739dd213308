package commands

import (
	"errors"

	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand is the sender withdrawing an order nobody accepted yet.
type CancelOrderCommand struct {
	orderID int64
	actorID int64

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID, actorID int64) (CancelOrderCommand, error) {
	if err := validateOrderTarget(orderID, actorID); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID: orderID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c CancelOrderCommand) ActorID() int64 {
	return c.actorID
}
