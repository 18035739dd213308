package conversation

import (
	"context"
	"errors"
	"fmt"

	"github.com/smaikl/GLG-bot/internal/core/application/usecases/commands"
	"github.com/smaikl/GLG-bot/internal/pkg/errs"
)

// attachDocuments runs the document loop: each file is stored right away,
// Confirm ends the loop.
func (e *Engine) attachDocuments(ctx context.Context, s *Session, in Input) (Reply, error) {
	if s.Step != StepDocuments {
		return Reply{}, fmt.Errorf("document upload has no step %q", s.Step)
	}

	switch in.Kind {
	case InputFile:
		if in.File == nil {
			return retry(s, "❌ The file could not be read."), nil
		}
		cmd, err := commands.NewAttachDocumentCommand(s.OrderID, s.UserID, *in.File)
		if errors.Is(err, errs.ErrUnsupportedFileType) {
			return retry(s, "❌ Only photos and documents can be attached."), nil
		}
		if errs.IsValidation(err) {
			return retry(s, "❌ The file is empty."), nil
		}
		if err != nil {
			return Reply{}, err
		}

		doc, err := e.handlers.AttachDocument.Handle(ctx, cmd)
		if err != nil {
			return Reply{}, err
		}
		s.Attached++
		e.logger.InfoContext(ctx, "Document attached",
			"order_id", s.OrderID, "document_id", doc.ID(), "user_id", s.UserID)

		return Reply{
			Text: fmt.Sprintf("📎 %s attached to order #%d.\n"+
				"Send another file or press Finish.", doc.Name(), s.OrderID),
			Keyboard: KeyboardDocuments,
		}, nil

	case InputConfirm:
		return Reply{
			Text:     fmt.Sprintf("✅ Done. Documents attached to order #%d: %d.", s.OrderID, s.Attached),
			Finished: true,
		}, nil

	default:
		return retry(s, "📎 Send a photo or a file, or press Finish."), nil
	}
}
