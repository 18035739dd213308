// Package sessionstore keeps conversation sessions between user inputs, either
// in process memory or in Redis.
package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/smaikl/GLG-bot/internal/core/application/conversation"
)

// MemoryStore loses every session on restart. Idle sessions are removed by Sweep.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]conversation.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]conversation.Session)}
}

func (s *MemoryStore) Load(_ context.Context, userID int64) (*conversation.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, conversation.ErrSessionNotFound
	}
	return &session, nil
}

func (s *MemoryStore) Save(_ context.Context, session *conversation.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.UserID] = *session
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	return nil
}

// Sweep removes sessions last touched more than olderThan ago.
func (s *MemoryStore) Sweep(_ context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len reports how many sessions are held.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
