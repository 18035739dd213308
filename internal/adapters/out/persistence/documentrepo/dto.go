package documentrepo

import (
	"time"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/document"
)

// DocumentDTO is the row layout of the documents table.
type DocumentDTO struct {
	ID         int64     `gorm:"column:doc_id;primaryKey;autoIncrement"`
	OrderID    int64     `gorm:"column:order_id;not null;index"`
	FilePath   string    `gorm:"column:file_path;not null"`
	FileName   string    `gorm:"column:file_name;not null"`
	FileType   string    `gorm:"column:file_type;not null"`
	UploadDate time.Time `gorm:"column:upload_date;not null"`
}

func (DocumentDTO) TableName() string {
	return "documents"
}

func fromDomain(d *document.Document) DocumentDTO {
	return DocumentDTO{
		ID:         d.ID(),
		OrderID:    d.OrderID(),
		FilePath:   d.Path(),
		FileName:   d.Name(),
		FileType:   string(d.Kind()),
		UploadDate: d.UploadedAt(),
	}
}

func toDomain(dto DocumentDTO) (*document.Document, error) {
	kind, err := document.ParseKind(dto.FileType)
	if err != nil {
		return nil, err
	}
	return document.RestoreDocument(dto.ID, dto.OrderID, dto.FilePath, dto.FileName, kind, dto.UploadDate)
}
