package commands

import (
	"errors"

	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is a carrier taking a published order.
type AcceptOrderCommand struct {
	orderID int64
	actorID int64

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(orderID, actorID int64) (AcceptOrderCommand, error) {
	if err := validateOrderTarget(orderID, actorID); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		orderID: orderID,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c AcceptOrderCommand) ActorID() int64 {
	return c.actorID
}
