package conversation

import (
	"context"
	"errors"
)

// ErrSessionNotFound is returned by SessionStore.Load for a user without a form in progress.
var ErrSessionNotFound = errors.New("conversation session not found")

// SessionStore keeps sessions between inputs. Implementations must be safe
// for concurrent use by different users.
type SessionStore interface {
	Load(ctx context.Context, userID int64) (*Session, error)
	Save(ctx context.Context, session *Session) error
	// Delete is a no-op for an unknown user.
	Delete(ctx context.Context, userID int64) error
}
