package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/document"
	"github.com/smaikl/GLG-bot/internal/core/ports"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
)

const uploadTimestampLayout = "20060102_150405"

// AttachDocumentCommandHandler stores the file bytes and records the document
// in one unit of work. The order must exist, must not be cancelled and the
// actor must be its sender or assigned carrier.
type AttachDocumentCommandHandler struct {
	uowFactory DocumentUoWFactory
	storage    ports.FileStorage
}

func NewAttachDocumentCommandHandler(uowFactory DocumentUoWFactory, storage ports.FileStorage) AttachDocumentCommandHandler {
	return AttachDocumentCommandHandler{
		uowFactory: uowFactory,
		storage:    storage,
	}
}

func (h AttachDocumentCommandHandler) Handle(ctx context.Context, cmd AttachDocumentCommand) (_ *document.Document, err error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if !o.CanAttachDocuments(cmd.ActorID()) {
		return nil, errs.NewForbiddenErrorWithCause("attach document",
			errors.New("only the sender or the assigned carrier of an active order can attach files"))
	}

	uploadedAt := time.Now()
	name := displayName(cmd, uploadedAt)
	path, err := h.storage.Store(ctx, cmd.Data(), storagePath(o.ID(), name, cmd.Extension(), uploadedAt))
	if err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	// The file must not outlive a document record that was never committed.
	defer func() {
		if err == nil {
			return
		}
		if delErr := h.storage.Delete(context.WithoutCancel(ctx), path); delErr != nil {
			err = errors.Join(err, fmt.Errorf("delete orphaned file: %w", delErr))
		}
	}()

	doc, err := document.NewDocument(o.ID(), path, name, cmd.Kind(), uploadedAt)
	if err != nil {
		return nil, err
	}

	if err = uow.DocumentRepository().Add(ctx, doc); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return doc, nil
}

func displayName(cmd AttachDocumentCommand, at time.Time) string {
	if cmd.Name() != "" {
		return cmd.Name()
	}
	if cmd.Kind() == document.KindPhoto {
		return "photo_" + at.Format(uploadTimestampLayout)
	}
	return "document_" + at.Format(uploadTimestampLayout)
}

// storagePath builds <order id>/<YYYYMMDD_HHMMSS>_<name><ext>. A name that already
// ends with the extension does not get it twice.
func storagePath(orderID int64, name, ext string, at time.Time) string {
	stem := name
	if len(name) > len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext) {
		stem = name[:len(name)-len(ext)]
	}
	stem = strings.NewReplacer("/", "_", "\\", "_").Replace(stem)
	return fmt.Sprintf("%d/%s_%s%s", orderID, at.Format(uploadTimestampLayout), stem, ext)
}
