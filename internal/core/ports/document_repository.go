package ports

import (
	"context"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/document"
)

// DocumentRepository is the append-only store of order attachments.
type DocumentRepository interface {
	// Add inserts the record and assigns its id through document.SetID.
	Add(ctx context.Context, doc *document.Document) error

	// ListForOrder returns attachments oldest first.
	ListForOrder(ctx context.Context, orderID int64) ([]*document.Document, error)
}
