// Package document provides the Document entity: a file attached to an order.
// Documents are append-only; once recorded they are never changed or removed.
package document

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smaikl/GLG-bot/internal/pkg/errs"
	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

// ErrDocumentIsNotConstructed is returned when a Document was not created via NewDocument or RestoreDocument.
var ErrDocumentIsNotConstructed = errors.New("Document must be created via NewDocument constructor")

// Kind tells the transport how to send the file back.
type Kind string

const (
	KindPhoto    Kind = "photo"
	KindDocument Kind = "document"
)

// ParseKind accepts only photo and document. Anything else is errs.ErrUnsupportedFileType.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

func (k Kind) Validate() error {
	if k != KindPhoto && k != KindDocument {
		return errs.ErrUnsupportedFileType
	}
	return nil
}

// Document references a stored file by its logical storage path.
type Document struct {
	id         int64
	orderID    int64
	path       string
	name       string
	kind       Kind
	uploadedAt time.Time
	guard      guard.ConstructorGuard
}

func NewDocument(orderID int64, path, name string, kind Kind, uploadedAt time.Time) (*Document, error) {
	d := &Document{
		uploadedAt: uploadedAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setOrderID(orderID),
		d.setPath(path),
		d.setName(name),
		kind.Validate(),
	); err != nil {
		return nil, err
	}
	d.kind = kind

	return d, nil
}

func RestoreDocument(id, orderID int64, path, name string, kind Kind, uploadedAt time.Time) (*Document, error) {
	d, err := NewDocument(orderID, path, name, kind, uploadedAt)
	if err != nil {
		return nil, err
	}
	if err := d.SetID(id); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) Validate() error {
	if d == nil {
		return ErrDocumentIsNotConstructed
	}
	return d.guard.Validate(ErrDocumentIsNotConstructed)
}

// SetID assigns the storage id once.
func (d *Document) SetID(id int64) error {
	if d.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("document id", errors.New("id is already set"))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("document id", fmt.Errorf("%d is not a positive id", id))
	}
	d.id = id
	return nil
}

func (d *Document) ID() int64 {
	return d.id
}

func (d *Document) OrderID() int64 {
	return d.orderID
}

func (d *Document) Path() string {
	return d.path
}

func (d *Document) Name() string {
	return d.name
}

func (d *Document) Kind() Kind {
	return d.kind
}

func (d *Document) UploadedAt() time.Time {
	return d.uploadedAt
}

func (d *Document) setOrderID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("order id")
	}
	d.orderID = id
	return nil
}

func (d *Document) setPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errs.NewValueIsRequiredError("file path")
	}
	d.path = path
	return nil
}

func (d *Document) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("file name")
	}
	d.name = name
	return nil
}
