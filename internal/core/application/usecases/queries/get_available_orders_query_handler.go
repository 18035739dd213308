package queries

import (
	"context"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/order"
	"github.com/smaikl/GLG-bot/internal/core/ports"
)

// GetAvailableOrdersQueryHandler lists new orders newest first, PageSize per page.
// The same query over unchanged data always returns the same page.
type GetAvailableOrdersQueryHandler struct {
	orders ports.OrderRepository
}

func NewGetAvailableOrdersQueryHandler(orders ports.OrderRepository) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{orders: orders}
}

func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) (Page[*order.Order], error) {
	if err := query.Validate(); err != nil {
		return Page[*order.Order]{}, err
	}

	available, err := h.orders.ListByStatus(ctx, order.New)
	if err != nil {
		return Page[*order.Order]{}, err
	}

	return Paginate(available, query.Page(), PageSize)
}
