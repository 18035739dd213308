package telegram

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/smaikl/GLG-bot/internal/core/application/conversation"
	"github.com/smaikl/GLG-bot/internal/core/application/usecases/queries"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/document"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/user"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	senderUserID int64 = 100
	carrierID    int64 = 200
	orderID      int64 = 12
)

// fakeAPI records everything sent to Telegram.
type fakeAPI struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	answered []string
	failSend func(c tgbotapi.Chattable) error
	updates  chan tgbotapi.Update
	stopped  bool
	fileURL  string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{updates: make(chan tgbotapi.Update)}
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSend != nil {
		if err := f.failSend(c); err != nil {
			return tgbotapi.Message{}, err
		}
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cb, ok := c.(tgbotapi.CallbackConfig); ok {
		f.answered = append(f.answered, cb.CallbackQueryID)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return tgbotapi.UpdatesChannel(f.updates)
}

func (f *fakeAPI) StopReceivingUpdates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeAPI) GetFileDirectURL(fileID string) (string, error) {
	if f.fileURL == "" {
		return "", errors.New("no file url")
	}
	return f.fileURL + "/" + fileID, nil
}

func (f *fakeAPI) messages() []tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tgbotapi.MessageConfig
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeAPI) texts() []string {
	var out []string
	for _, m := range f.messages() {
		out = append(out, m.Text)
	}
	return out
}

func (f *fakeAPI) files() []tgbotapi.Chattable {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tgbotapi.Chattable
	for _, c := range f.sent {
		switch c.(type) {
		case tgbotapi.PhotoConfig, tgbotapi.DocumentConfig:
			out = append(out, c)
		}
	}
	return out
}

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

func newTestUser(t *testing.T, id int64, role kernel.Role) *user.User {
	t.Helper()
	phone, err := kernel.NewPhone("+79995550011")
	require.NoError(t, err)
	u, err := user.NewUser(id, role, user.Profile{FullName: "Test User", Phone: phone}, time.Now())
	require.NoError(t, err)
	return u
}

func newTestOrder(t *testing.T, id int64, status order.Status, stage order.Stage) *order.Order {
	t.Helper()
	w, err := kernel.NewWeight(1500)
	require.NoError(t, err)
	var carrier *int64
	if status.HasCarrier() {
		c := carrierID
		carrier = &c
	}
	o, err := order.RestoreOrder(id, senderUserID, carrier, order.Cargo{
		Type:            order.CargoStandard,
		Weight:          w,
		PickupAddress:   "Moscow",
		DeliveryAddress: "Kazan",
		PickupDate:      "25.12",
	}, status, stage, time.Now())
	require.NoError(t, err)
	return o
}

type ConversationMock struct{ mock.Mock }

func (m *ConversationMock) StartRegistration(ctx context.Context, userID int64) (conversation.Reply, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(conversation.Reply), args.Error(1)
}

func (m *ConversationMock) StartOrderCreation(ctx context.Context, userID int64) (conversation.Reply, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(conversation.Reply), args.Error(1)
}

func (m *ConversationMock) StartProfileEdit(ctx context.Context, userID int64) (conversation.Reply, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(conversation.Reply), args.Error(1)
}

func (m *ConversationMock) StartDocumentUpload(ctx context.Context, userID, orderID int64) (conversation.Reply, error) {
	args := m.Called(ctx, userID, orderID)
	return args.Get(0).(conversation.Reply), args.Error(1)
}

func (m *ConversationMock) Handle(ctx context.Context, userID int64, in conversation.Input) (conversation.Reply, error) {
	args := m.Called(ctx, userID, in)
	return args.Get(0).(conversation.Reply), args.Error(1)
}

type TransitionMock[C any] struct{ mock.Mock }

func (m *TransitionMock[C]) Handle(ctx context.Context, cmd C) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type UserQueryMock struct{ mock.Mock }

func (m *UserQueryMock) Handle(ctx context.Context, q queries.GetUserQuery) (*user.User, error) {
	args := m.Called(ctx, q)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type AvailableOrdersMock struct{ mock.Mock }

func (m *AvailableOrdersMock) Handle(
	ctx context.Context,
	q queries.GetAvailableOrdersQuery,
) (queries.Page[*order.Order], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.Page[*order.Order]), args.Error(1)
}

type ActorOrdersMock struct{ mock.Mock }

func (m *ActorOrdersMock) Handle(ctx context.Context, q queries.GetActorOrdersQuery) ([]*order.Order, error) {
	args := m.Called(ctx, q)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type OrderDetailsMock struct{ mock.Mock }

func (m *OrderDetailsMock) Handle(
	ctx context.Context,
	q queries.GetOrderDetailsQuery,
) (queries.GetOrderDetailsQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetOrderDetailsQueryResponse), args.Error(1)
}

type OrderDocumentsMock struct{ mock.Mock }

func (m *OrderDocumentsMock) Handle(ctx context.Context, q queries.GetOrderDocumentsQuery) ([]*document.Document, error) {
	args := m.Called(ctx, q)
	docs, _ := args.Get(0).([]*document.Document)
	return docs, args.Error(1)
}

type FileStorageMock struct{ mock.Mock }

func (m *FileStorageMock) Store(ctx context.Context, data []byte, suggestedPath string) (string, error) {
	args := m.Called(ctx, data, suggestedPath)
	return args.String(0), args.Error(1)
}

func (m *FileStorageMock) Retrieve(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *FileStorageMock) Delete(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

type DownloaderMock struct{ mock.Mock }

func (m *DownloaderMock) Download(ctx context.Context, fileID string) ([]byte, error) {
	args := m.Called(ctx, fileID)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}
