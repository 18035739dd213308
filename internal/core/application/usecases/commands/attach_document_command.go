package commands

import (
	"errors"
	"strings"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/document"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
	"github.com/smaikl/GLG-bot/internal/pkg/guard"
)

var ErrAttachDocumentCommandIsNotConstructed = errors.New(
	"AttachDocumentCommand must be created via NewAttachDocumentCommand constructor",
)

// FileUpload is a file received from a chat. Kind is whatever the transport
// saw ("photo", "document", "video", ...); only photos and documents are kept.
type FileUpload struct {
	Kind      string
	Name      string
	Extension string
	Data      []byte
}

// AttachDocumentCommand adds a file to an order the actor takes part in.
//
// Example:
//
//	cmd, err := NewAttachDocumentCommand(orderID, userID, FileUpload{
//	    Kind:      "document",
//	    Name:      "invoice.pdf",
//	    Extension: ".pdf",
//	    Data:      data,
//	})
//	if errors.Is(err, errs.ErrUnsupportedFileType) {
//	    // ask for a photo or a document
//	}
type AttachDocumentCommand struct {
	orderID   int64
	actorID   int64
	kind      document.Kind
	name      string
	extension string
	data      []byte

	guard guard.ConstructorGuard
}

func NewAttachDocumentCommand(orderID, actorID int64, upload FileUpload) (AttachDocumentCommand, error) {
	kind, err := document.ParseKind(upload.Kind)
	if err != nil {
		return AttachDocumentCommand{}, err
	}

	var dataErr error
	if len(upload.Data) == 0 {
		dataErr = errs.NewValueIsRequiredError("file content")
	}
	if err = errors.Join(validateOrderTarget(orderID, actorID), dataErr); err != nil {
		return AttachDocumentCommand{}, err
	}

	return AttachDocumentCommand{
		orderID:   orderID,
		actorID:   actorID,
		kind:      kind,
		name:      strings.TrimSpace(upload.Name),
		extension: normalizeExtension(upload.Extension),
		data:      upload.Data,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AttachDocumentCommand) Validate() error {
	return c.guard.Validate(ErrAttachDocumentCommandIsNotConstructed)
}

func (c AttachDocumentCommand) OrderID() int64 {
	return c.orderID
}

func (c AttachDocumentCommand) ActorID() int64 {
	return c.actorID
}

func (c AttachDocumentCommand) Kind() document.Kind {
	return c.kind
}

// Name may be empty for photos; the handler names them after the upload time.
func (c AttachDocumentCommand) Name() string {
	return c.name
}

func (c AttachDocumentCommand) Extension() string {
	return c.extension
}

func (c AttachDocumentCommand) Data() []byte {
	return c.data
}

func normalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return ".unknown"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.ToLower(ext)
}
