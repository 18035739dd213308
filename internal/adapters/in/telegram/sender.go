package telegram

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/smaikl/GLG-bot/internal/core/domain/model/document"
)

// Sender writes to chats. It implements ports.MessageSender for notifications.
// Texts go out without a parse mode so user supplied values need no escaping.
type Sender struct {
	api    API
	logger *slog.Logger
}

func NewSender(api API, logger *slog.Logger) *Sender {
	return &Sender{
		api:    api,
		logger: logger.With("component", "telegram_sender"),
	}
}

func (s *Sender) Send(ctx context.Context, chatID int64, text string) error {
	return s.SendWithMarkup(ctx, chatID, text, nil)
}

// SendWithMarkup attaches a reply or inline keyboard. A nil markup keeps the
// keyboard the chat already shows.
func (s *Sender) SendWithMarkup(ctx context.Context, chatID int64, text string, markup any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	_, err := s.api.Send(msg)
	return err
}

// SendFile sends stored bytes back as a photo or a document.
func (s *Sender) SendFile(ctx context.Context, chatID int64, kind document.Kind, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	file := tgbotapi.FileBytes{Name: name, Bytes: data}

	var c tgbotapi.Chattable
	if kind == document.KindPhoto {
		photo := tgbotapi.NewPhoto(chatID, file)
		photo.Caption = name
		c = photo
	} else {
		c = tgbotapi.NewDocument(chatID, file)
	}
	_, err := s.api.Send(c)
	return err
}

// answer acknowledges a callback so the client stops its spinner.
func (s *Sender) answer(callbackID, text string) {
	if _, err := s.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		s.logger.Warn("Failed to answer callback", "callback_id", callbackID, "error", err)
	}
}
