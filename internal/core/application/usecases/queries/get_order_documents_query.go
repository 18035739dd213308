package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/document"
	"github.com/smaikl/GLG-bot/internal/core/ports"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

var ErrGetOrderDocumentsQueryIsNotConstructed = errors.New(
	"GetOrderDocumentsQuery must be created via NewGetOrderDocumentsQuery constructor",
)

// GetOrderDocumentsQuery lists the files attached to an order. Only the sender
// and the assigned carrier may see them.
type GetOrderDocumentsQuery struct {
	orderID  int64
	viewerID int64

	guard guard.ConstructorGuard
}

func NewGetOrderDocumentsQuery(orderID, viewerID int64) (GetOrderDocumentsQuery, error) {
	if err := validateIDs(orderID, viewerID); err != nil {
		return GetOrderDocumentsQuery{}, err
	}
	return GetOrderDocumentsQuery{orderID: orderID, viewerID: viewerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderDocumentsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDocumentsQueryIsNotConstructed)
}

type GetOrderDocumentsQueryHandler struct {
	orders    ports.OrderRepository
	documents ports.DocumentRepository
}

func NewGetOrderDocumentsQueryHandler(
	orders ports.OrderRepository,
	documents ports.DocumentRepository,
) GetOrderDocumentsQueryHandler {
	return GetOrderDocumentsQueryHandler{orders: orders, documents: documents}
}

// Handle returns the documents oldest first; an order without attachments
// yields an empty slice.
func (h GetOrderDocumentsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDocumentsQuery,
) ([]*document.Document, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsParticipant(query.viewerID) {
		return nil, errs.NewForbiddenErrorWithCause("view documents",
			fmt.Errorf("user %d is not a participant of order %d", query.viewerID, o.ID()))
	}

	return h.documents.ListForOrder(ctx, o.ID())
}
