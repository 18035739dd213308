package notifications_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/smaikl/GLG-bot/internal/core/application/notifications"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"
	"github.com/smaikl/GLG-bot/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	senderID  int64 = 10
	carrierID int64 = 20
)

type MockMessageSender struct{ mock.Mock }

func (m *MockMessageSender) Send(ctx context.Context, chatID int64, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}

func newLogger() (*slog.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

func newOrder(t *testing.T, status order.Status, stage order.Stage) *order.Order {
	t.Helper()
	w, err := kernel.NewWeight(10)
	require.NoError(t, err)
	var carrier *int64
	if status.HasCarrier() {
		id := carrierID
		carrier = &id
	}
	o, err := order.RestoreOrder(7, senderID, carrier, order.Cargo{
		Type: order.CargoValuable, Weight: w, PickupAddress: "A", DeliveryAddress: "B", PickupDate: "now",
	}, status, stage, time.Now())
	require.NoError(t, err)
	return o
}

func newCarrier(t *testing.T, withEmail bool) *user.User {
	t.Helper()
	phone, err := kernel.NewPhone("+79995550011")
	require.NoError(t, err)
	profile := user.Profile{FullName: "Sergey Carrier", Phone: phone}
	if withEmail {
		email, err := kernel.NewEmail("sergey@cargo.ru")
		require.NoError(t, err)
		profile.Email = &email
	}
	u, err := user.NewUser(carrierID, kernel.RoleCarrier, profile, time.Now())
	require.NoError(t, err)
	return u
}

func TestDispatcher_Notify(t *testing.T) {
	carrier := newCarrier(t, true)
	sender, err := user.NewUser(senderID, kernel.RoleSender, user.Profile{FullName: "S", Phone: carrier.Phone()}, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name      string
		kind      services.TransitionKind
		status    order.Status
		stage     order.Stage
		actor     *user.User
		recipient int64
		contains  []string
	}{
		{
			name: "accept goes to the sender with carrier contacts", kind: services.TransitionAccepted,
			status: order.Accepted, actor: carrier, recipient: senderID,
			contains: []string{"#7", "accepted", "Sergey Carrier", "+79995550011", "sergey@cargo.ru"},
		},
		{
			name: "delivered goes to the sender", kind: services.TransitionDelivered,
			status: order.Delivered, actor: carrier, recipient: senderID,
			contains: []string{"#7", "delivered", "confirm"},
		},
		{
			name: "completed goes to the carrier", kind: services.TransitionCompleted,
			status: order.Completed, actor: sender, recipient: carrierID,
			contains: []string{"#7", "completed"},
		},
		{
			name: "stage goes to the sender", kind: services.TransitionStageReported,
			status: order.Accepted, stage: order.StageOnRoute, actor: carrier, recipient: senderID,
			contains: []string{"#7", "on the way"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			logger, _ := newLogger()
			msg := new(MockMessageSender)
			msg.On("Send", ctx, tt.recipient, mock.MatchedBy(func(text string) bool {
				for _, part := range tt.contains {
					if !assert.Contains(t, text, part) {
						return false
					}
				}
				return true
			})).Return(nil).Once()

			notifications.NewDispatcher(msg, logger).Notify(ctx, services.Transition{
				Kind:    tt.kind,
				Order:   newOrder(t, tt.status, tt.stage),
				ActorID: tt.actor.ID(),
			}, tt.actor)

			msg.AssertExpectations(t)
		})
	}
}

func TestDispatcher_Notify_AcceptWithoutEmail(t *testing.T) {
	ctx := t.Context()
	logger, _ := newLogger()
	msg := new(MockMessageSender)
	msg.On("Send", ctx, senderID, mock.MatchedBy(func(text string) bool {
		return assert.Contains(t, text, "Email: not provided")
	})).Return(nil).Once()

	notifications.NewDispatcher(msg, logger).Notify(ctx, services.Transition{
		Kind: services.TransitionAccepted, Order: newOrder(t, order.Accepted, order.StageNone), ActorID: carrierID,
	}, newCarrier(t, false))

	msg.AssertExpectations(t)
}

func TestDispatcher_Notify_CancelSendsNothing(t *testing.T) {
	logger, _ := newLogger()
	msg := new(MockMessageSender)

	notifications.NewDispatcher(msg, logger).Notify(t.Context(), services.Transition{
		Kind: services.TransitionCancelled, Order: newOrder(t, order.Cancelled, order.StageNone), ActorID: senderID,
	}, nil)

	msg.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_Notify_SendFailureIsLoggedAndSwallowed(t *testing.T) {
	ctx := t.Context()
	logger, buf := newLogger()
	msg := new(MockMessageSender)
	msg.On("Send", ctx, senderID, mock.Anything).Return(errors.New("bot was blocked by the user")).Once()

	assert.NotPanics(t, func() {
		notifications.NewDispatcher(msg, logger).Notify(ctx, services.Transition{
			Kind: services.TransitionDelivered, Order: newOrder(t, order.Delivered, order.StageNone), ActorID: carrierID,
		}, newCarrier(t, false))
	})

	msg.AssertNumberOfCalls(t, "Send", 1)
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"order_id":7`)
	assert.Contains(t, buf.String(), `"recipient":10`)
	assert.Contains(t, buf.String(), "bot was blocked by the user")
}

func TestDispatcher_Notify_NonParticipantActor(t *testing.T) {
	logger, buf := newLogger()
	msg := new(MockMessageSender)

	notifications.NewDispatcher(msg, logger).Notify(t.Context(), services.Transition{
		Kind: services.TransitionDelivered, Order: newOrder(t, order.Delivered, order.StageNone), ActorID: 555,
	}, nil)

	msg.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	assert.Contains(t, buf.String(), "Cannot resolve notification recipient")
}
