package commands_test

import (
	"testing"
	"time"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

const (
	senderID  int64 = 100
	carrierID int64 = 200
	orderID   int64 = 300
)

func newTestUser(t *testing.T, id int64, role kernel.Role) *user.User {
	t.Helper()
	phone, err := kernel.NewPhone("+79991234567")
	require.NoError(t, err)
	u, err := user.NewUser(id, role, user.Profile{FullName: "Test User", Phone: phone}, time.Now())
	require.NoError(t, err)
	return u
}

func newTestCargo(t *testing.T) order.Cargo {
	t.Helper()
	w, err := kernel.NewWeight(500)
	require.NoError(t, err)
	return order.Cargo{
		Type:            order.CargoStandard,
		Weight:          w,
		PickupAddress:   "Moscow",
		DeliveryAddress: "Tula",
		PickupDate:      "tomorrow",
	}
}

// newStoredOrder builds an order as the repository would return it.
func newStoredOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	var carrier *int64
	if status.HasCarrier() {
		id := carrierID
		carrier = &id
	}
	o, err := order.RestoreOrder(orderID, senderID, carrier, newTestCargo(t), status, order.StageNone, time.Now())
	require.NoError(t, err)
	return o
}

func userProfile(phone kernel.Phone) user.Profile {
	return user.Profile{Username: "tester", FullName: "Test User", Phone: phone}
}
