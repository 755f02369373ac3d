package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned for expired or unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "admin_session:"

// SessionStore persists admin login sessions.
type SessionStore interface {
	Create(ctx context.Context, user string, ttl time.Duration) (string, error)
	Validate(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore keeps admin sessions in Redis so a back-office restart
// does not log every administrator out.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a session store over the given Redis client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// Create stores a new session for user and returns its id.
func (s *RedisSessionStore) Create(ctx context.Context, user string, ttl time.Duration) (string, error) {
	id := uuid.NewString()
	if err := s.client.Set(ctx, sessionKeyPrefix+id, user, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return id, nil
}

// Validate returns the user bound to the session id.
func (s *RedisSessionStore) Validate(ctx context.Context, id string) (string, error) {
	user, err := s.client.Get(ctx, sessionKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up session: %w", err)
	}
	return user, nil
}

// Delete removes the session.
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
