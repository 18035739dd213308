package documentrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/document"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormDocumentRepository struct {
	db *gorm.DB
}

func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

func (r *GormDocumentRepository) Add(ctx context.Context, doc *document.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if doc.ID() != 0 {
		return errs.NewConflictErrorWithCause("document", doc.ID(), errors.New("documents are append-only"))
	}

	dto := fromDomain(doc)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if err := doc.SetID(dto.ID); err != nil {
		return err
	}
	return nil
}

func (r *GormDocumentRepository) ListForOrder(ctx context.Context, orderID int64) ([]*document.Document, error) {
	var dtos []DocumentDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("upload_date ASC, doc_id ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	docs := make([]*document.Document, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", dto.ID, err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}
