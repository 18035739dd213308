package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "github.com/smaikl/GLG-bot/internal/adapters/in/http"
	"github.com/smaikl/GLG-bot/internal/core/application/usecases/queries"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/kernel"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAvailableOrders struct{ mock.Mock }

func (m *MockAvailableOrders) Handle(
	ctx context.Context,
	q queries.GetAvailableOrdersQuery,
) (queries.Page[*order.Order], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.Page[*order.Order]), args.Error(1)
}

func newRouter(q httpadapter.AvailableOrdersQuery) *echo.Echo {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return httpadapter.NewEcho(httpadapter.NewServer(q, logger))
}

func serve(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func newBoardOrder(t *testing.T, id int64) *order.Order {
	t.Helper()
	w, err := kernel.NewWeight(250.5)
	require.NoError(t, err)
	comment := "call before arrival"
	o, err := order.RestoreOrder(id, 1, nil, order.Cargo{
		Type:            order.CargoFragile,
		Weight:          w,
		PickupAddress:   "Tver",
		DeliveryAddress: "Pskov",
		PickupDate:      "01.03",
		Comment:         &comment,
	}, order.New, order.StageNone, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return o
}

func TestHealth(t *testing.T) {
	rec := serve(newRouter(new(MockAvailableOrders)), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())

	_, err := uuid.Parse(rec.Header().Get(echo.HeaderXRequestID))
	assert.NoError(t, err, "request id is a uuid")
}

func TestGetAvailableOrders(t *testing.T) {
	t.Run("returns a page", func(t *testing.T) {
		q := new(MockAvailableOrders)
		q.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetAvailableOrdersQuery) bool {
			return q.Page() == 2
		})).Return(queries.Page[*order.Order]{
			Items:      []*order.Order{newBoardOrder(t, 6)},
			Number:     2,
			TotalPages: 2,
			TotalItems: 6,
		}, nil)

		rec := serve(newRouter(q), "/api/v1/orders/available?page=2")
		require.Equal(t, http.StatusOK, rec.Code)

		var body httpadapter.OrdersPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 2, body.Page)
		assert.Equal(t, 6, body.TotalItems)
		require.Len(t, body.Items, 1)
		assert.Equal(t, int64(6), body.Items[0].ID)
		assert.Equal(t, "fragile", body.Items[0].CargoType)
		assert.InDelta(t, 250.5, body.Items[0].WeightKg, 0.001)
		assert.Equal(t, "new", body.Items[0].Status)
		assert.Nil(t, body.Items[0].Dimensions)
		require.NotNil(t, body.Items[0].Comment)
		assert.Equal(t, "call before arrival", *body.Items[0].Comment)
	})

	t.Run("defaults to the first page", func(t *testing.T) {
		q := new(MockAvailableOrders)
		q.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetAvailableOrdersQuery) bool {
			return q.Page() == 1
		})).Return(queries.Page[*order.Order]{Items: []*order.Order{}, Number: 1}, nil)

		rec := serve(newRouter(q), "/api/v1/orders/available")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"items":[],"page":1,"total_pages":0,"total_items":0}`, rec.Body.String())
	})

	t.Run("rejects a bad page", func(t *testing.T) {
		q := new(MockAvailableOrders)
		router := newRouter(q)

		assert.Equal(t, http.StatusBadRequest, serve(router, "/api/v1/orders/available?page=abc").Code)
		assert.Equal(t, http.StatusBadRequest, serve(router, "/api/v1/orders/available?page=0").Code)
		q.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("hides storage failures", func(t *testing.T) {
		q := new(MockAvailableOrders)
		q.On("Handle", mock.Anything, mock.Anything).
			Return(queries.Page[*order.Order]{}, errors.New("connection refused"))

		rec := serve(newRouter(q), "/api/v1/orders/available")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}
