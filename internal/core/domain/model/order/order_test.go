package order_test

import (
	"testing"
	"time"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	senderID  int64 = 100
	carrierID int64 = 200
	otherID   int64 = 300
)

func validCargo(t *testing.T) order.Cargo {
	t.Helper()
	w, err := kernel.ParseWeight("1500")
	require.NoError(t, err)
	dims := "2x1x1"
	return order.Cargo{
		Type:            order.CargoFragile,
		Weight:          w,
		Dimensions:      &dims,
		PickupAddress:   "Moscow, Lenina 1",
		DeliveryAddress: "Kazan, Baumana 5",
		PickupDate:      "tomorrow 10:00",
	}
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(senderID, validCargo(t), time.Now())
	require.NoError(t, err)
	require.NoError(t, o.SetID(1))
	return o
}

func acceptedOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newOrder(t)
	require.NoError(t, o.Accept(carrierID, kernel.RoleCarrier))
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create new order without carrier", func(t *testing.T) {
		o, err := order.NewOrder(senderID, validCargo(t), time.Now())

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, int64(0), o.ID())
		assert.Equal(t, senderID, o.SenderID())
		assert.Nil(t, o.CarrierID())
		assert.Equal(t, order.New, o.Status())
		assert.Equal(t, order.StageNone, o.Stage())
		assert.Equal(t, order.CargoFragile, o.Cargo().Type)
		assert.InDelta(t, 1500.0, o.Cargo().Weight.Kilograms(), 1e-9)
		assert.Nil(t, o.Cargo().Comment)
	})

	t.Run("should drop blank optional fields", func(t *testing.T) {
		c := validCargo(t)
		blank := "   "
		c.Dimensions = &blank
		c.Comment = &blank

		o, err := order.NewOrder(senderID, c, time.Now())

		require.NoError(t, err)
		assert.Nil(t, o.Cargo().Dimensions)
		assert.Nil(t, o.Cargo().Comment)
	})

	t.Run("should join every missing field", func(t *testing.T) {
		o, err := order.NewOrder(0, order.Cargo{}, time.Now())

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "sender id")
		assert.Contains(t, err.Error(), "cargo type")
		assert.Contains(t, err.Error(), "weight must be created")
		assert.Contains(t, err.Error(), "pickup address")
		assert.Contains(t, err.Error(), "delivery address")
		assert.Contains(t, err.Error(), "pickup date")
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_SetID(t *testing.T) {
	o, err := order.NewOrder(senderID, validCargo(t), time.Now())
	require.NoError(t, err)

	require.ErrorIs(t, o.SetID(0), errs.ErrValueIsInvalid)
	require.NoError(t, o.SetID(9))
	require.ErrorIs(t, o.SetID(10), order.ErrIDIsAlreadySet)
	assert.Equal(t, int64(9), o.ID())
}

func TestOrder_Accept(t *testing.T) {
	t.Run("should assign carrier", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.Accept(carrierID, kernel.RoleCarrier))

		assert.Equal(t, order.Accepted, o.Status())
		require.NotNil(t, o.CarrierID())
		assert.Equal(t, carrierID, *o.CarrierID())
	})

	t.Run("should forbid senders", func(t *testing.T) {
		o := newOrder(t)

		err := o.Accept(otherID, kernel.RoleSender)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, order.New, o.Status())
		assert.Nil(t, o.CarrierID())
	})

	t.Run("should forbid accepting own order", func(t *testing.T) {
		o := newOrder(t)

		require.ErrorIs(t, o.Accept(senderID, kernel.RoleCarrier), errs.ErrForbidden)
	})

	t.Run("second accept must not overwrite the carrier", func(t *testing.T) {
		o := acceptedOrder(t)

		err := o.Accept(otherID, kernel.RoleCarrier)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, carrierID, *o.CarrierID())
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("carrier id getter returns a copy", func(t *testing.T) {
		o := acceptedOrder(t)
		id := o.CarrierID()
		*id = 999
		assert.Equal(t, carrierID, *o.CarrierID())
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("should run the full happy path", func(t *testing.T) {
		o := acceptedOrder(t)

		require.NoError(t, o.MarkDelivered(carrierID))
		assert.Equal(t, order.Delivered, o.Status())

		require.NoError(t, o.ConfirmDelivery(senderID))
		assert.Equal(t, order.Completed, o.Status())
		assert.True(t, o.Status().IsTerminal())
	})

	t.Run("only the assigned carrier can mark delivered", func(t *testing.T) {
		o := acceptedOrder(t)

		require.ErrorIs(t, o.MarkDelivered(otherID), errs.ErrForbidden)
		require.ErrorIs(t, o.MarkDelivered(senderID), errs.ErrForbidden)
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("confirm delivery on an accepted order is a conflict", func(t *testing.T) {
		o := acceptedOrder(t)

		err := o.ConfirmDelivery(senderID)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("confirm delivery by the carrier is forbidden", func(t *testing.T) {
		o := acceptedOrder(t)
		require.NoError(t, o.MarkDelivered(carrierID))

		require.ErrorIs(t, o.ConfirmDelivery(carrierID), errs.ErrForbidden)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("mark delivered twice is a conflict", func(t *testing.T) {
		o := acceptedOrder(t)
		require.NoError(t, o.MarkDelivered(carrierID))

		require.ErrorIs(t, o.MarkDelivered(carrierID), errs.ErrConflict)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("sender can cancel a new order", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.Cancel(senderID))
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Nil(t, o.CarrierID())
	})

	t.Run("others cannot cancel", func(t *testing.T) {
		o := newOrder(t)
		require.ErrorIs(t, o.Cancel(otherID), errs.ErrForbidden)
	})

	t.Run("accepted order cannot be cancelled", func(t *testing.T) {
		o := acceptedOrder(t)
		require.ErrorIs(t, o.Cancel(senderID), errs.ErrConflict)
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("cancelled order cannot be accepted", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Cancel(senderID))
		require.ErrorIs(t, o.Accept(carrierID, kernel.RoleCarrier), errs.ErrConflict)
	})
}

func TestOrder_SetStage(t *testing.T) {
	t.Run("carrier reports stages in any order", func(t *testing.T) {
		o := acceptedOrder(t)

		require.NoError(t, o.SetStage(carrierID, order.StageAwaitingUnload))
		require.NoError(t, o.SetStage(carrierID, order.StageLoading))

		assert.Equal(t, order.StageLoading, o.Stage())
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("stage on a new order is forbidden for a non assigned carrier", func(t *testing.T) {
		o := newOrder(t)
		require.ErrorIs(t, o.SetStage(carrierID, order.StageLoading), errs.ErrForbidden)
	})

	t.Run("stage on a delivered order is a conflict", func(t *testing.T) {
		o := acceptedOrder(t)
		require.NoError(t, o.MarkDelivered(carrierID))

		require.ErrorIs(t, o.SetStage(carrierID, order.StageUnloaded), errs.ErrConflict)
	})

	t.Run("sender cannot report a stage", func(t *testing.T) {
		o := acceptedOrder(t)
		require.ErrorIs(t, o.SetStage(senderID, order.StageOnRoute), errs.ErrForbidden)
		assert.Equal(t, order.StageNone, o.Stage())
	})

	t.Run("none is not settable", func(t *testing.T) {
		o := acceptedOrder(t)
		require.ErrorIs(t, o.SetStage(carrierID, order.StageNone), errs.ErrValueIsInvalid)
	})
}

func TestOrder_Participants(t *testing.T) {
	o := acceptedOrder(t)

	cp, ok := o.Counterparty(senderID)
	require.True(t, ok)
	assert.Equal(t, carrierID, cp)

	cp, ok = o.Counterparty(carrierID)
	require.True(t, ok)
	assert.Equal(t, senderID, cp)

	_, ok = o.Counterparty(otherID)
	assert.False(t, ok)

	_, ok = newOrder(t).Counterparty(senderID)
	assert.False(t, ok, "a new order has no carrier yet")

	assert.True(t, newOrder(t).CanView(otherID, kernel.RoleCarrier))
	assert.False(t, newOrder(t).CanView(otherID, kernel.RoleSender))
	assert.False(t, o.CanView(otherID, kernel.RoleCarrier))
	assert.True(t, o.CanAttachDocuments(carrierID))
	assert.False(t, o.CanAttachDocuments(otherID))
}

func TestRestoreOrder(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	carrier := carrierID

	t.Run("should restore accepted order with stage", func(t *testing.T) {
		o, err := order.RestoreOrder(5, senderID, &carrier, validCargo(t), order.Accepted, order.StageOnRoute, created)

		require.NoError(t, err)
		assert.Equal(t, int64(5), o.ID())
		assert.Equal(t, order.Accepted, o.Status())
		assert.Equal(t, order.StageOnRoute, o.Stage())
		assert.Equal(t, created, o.CreatedAt())
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(5, senderID, nil, validCargo(t), order.Unknown, order.StageNone, created)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject accepted order without carrier", func(t *testing.T) {
		_, err := order.RestoreOrder(5, senderID, nil, validCargo(t), order.Accepted, order.StageNone, created)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot have carrier")
	})

	t.Run("should reject new order with carrier", func(t *testing.T) {
		_, err := order.RestoreOrder(5, senderID, &carrier, validCargo(t), order.New, order.StageNone, created)
		require.Error(t, err)
	})

	t.Run("should reject stage on new order", func(t *testing.T) {
		_, err := order.RestoreOrder(5, senderID, nil, validCargo(t), order.New, order.StageLoading, created)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stage")
	})
}
