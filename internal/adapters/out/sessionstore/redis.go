package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/smaikl/GLG-bot/internal/core/application/conversation"
)

// RedisStore keeps sessions as JSON under conversation:<user id>. Every save
// refreshes the TTL, so only abandoned forms expire.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects and pings the server.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("conversation:%d", userID)
}

func (s *RedisStore) Load(ctx context.Context, userID int64) (*conversation.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, conversation.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session conversation.Session
	if err = json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session of user %d: %w", userID, err)
	}
	return &session, nil
}

func (s *RedisStore) Save(ctx context.Context, session *conversation.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(session.UserID), data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, sessionKey(userID)).Err()
}
