package commands

import (
	"errors"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand is a confirmed shipment request.
//
// Example:
//
//	weight, _ := kernel.ParseWeight("1500")
//	cmd, err := NewCreateOrderCommand(senderID, order.Cargo{
//	    Type:            order.CargoStandard,
//	    Weight:          weight,
//	    PickupAddress:   "Moscow, Tverskaya 1",
//	    DeliveryAddress: "Tula, Lenina 2",
//	    PickupDate:      "12.06",
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	senderID int64
	cargo    order.Cargo

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(senderID int64, cargo order.Cargo) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSenderID(senderID),
		cmd.setCargo(cargo),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) SenderID() int64 {
	return c.senderID
}

func (c CreateOrderCommand) Cargo() order.Cargo {
	return c.cargo
}

func (c *CreateOrderCommand) setSenderID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("sender id")
	}

	c.senderID = id
	return nil
}

func (c *CreateOrderCommand) setCargo(cargo order.Cargo) error {
	if err := errors.Join(
		cargo.Type.Validate(),
		cargo.Weight.Validate(),
	); err != nil {
		return err
	}

	c.cargo = cargo
	return nil
}
