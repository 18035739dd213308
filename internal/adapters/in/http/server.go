// Package http exposes the operator endpoints: a health probe and a read-only
// view of the order board.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/smaikl/GLG-bot/internal/core/application/usecases/queries"
	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type AvailableOrdersQuery interface {
	Handle(ctx context.Context, q queries.GetAvailableOrdersQuery) (queries.Page[*order.Order], error)
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Order struct {
	ID              int64     `json:"id"`
	CargoType       string    `json:"cargo_type"`
	WeightKg        float64   `json:"weight_kg"`
	Dimensions      *string   `json:"dimensions,omitempty"`
	PickupAddress   string    `json:"pickup_address"`
	DeliveryAddress string    `json:"delivery_address"`
	PickupDate      string    `json:"pickup_date"`
	Comment         *string   `json:"comment,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type OrdersPage struct {
	Items      []Order `json:"items"`
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
	TotalItems int     `json:"total_items"`
}

// Server handles the HTTP requests on top of the application queries.
type Server struct {
	availableOrders AvailableOrdersQuery
	logger          *slog.Logger
}

func NewServer(availableOrders AvailableOrdersQuery, logger *slog.Logger) *Server {
	return &Server{
		availableOrders: availableOrders,
		logger:          logger.With("component", "http_server"),
	}
}

// NewEcho builds the router with request ids, panic recovery and access logs.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method, "uri", v.URI, "status", v.Status,
				"latency", v.Latency, "request_id", v.RequestID,
			}
			if v.Error != nil {
				s.logger.ErrorContext(c.Request().Context(), "Request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			s.logger.InfoContext(c.Request().Context(), "Request handled", attrs...)
			return nil
		},
	}))

	e.GET("/health", s.GetHealth)
	e.GET("/api/v1/orders/available", s.GetAvailableOrders)
	return e
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetAvailableOrders handles GET /api/v1/orders/available?page=N - one page of
// the board carriers see, newest first.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	page := 1
	if raw := ctx.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "page must be a number",
			})
		}
		page = n
	}

	query, err := queries.NewGetAvailableOrdersQuery(page)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid page: " + err.Error(),
		})
	}

	result, err := s.availableOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errs.IsValidation(err) {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := OrdersPage{
		Items:      make([]Order, len(result.Items)),
		Page:       result.Number,
		TotalPages: result.TotalPages,
		TotalItems: result.TotalItems,
	}
	for i, o := range result.Items {
		c := o.Cargo()
		response.Items[i] = Order{
			ID:              o.ID(),
			CargoType:       c.Type.String(),
			WeightKg:        c.Weight.Kilograms(),
			Dimensions:      c.Dimensions,
			PickupAddress:   c.PickupAddress,
			DeliveryAddress: c.DeliveryAddress,
			PickupDate:      c.PickupDate,
			Comment:         c.Comment,
			Status:          o.Status().String(),
			CreatedAt:       o.CreatedAt(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
