package ports

import "context"

// MessageSender delivers a plain text message to a chat. For private chats the
// chat id equals the user id.
type MessageSender interface {
	Send(ctx context.Context, chatID int64, text string) error
}
