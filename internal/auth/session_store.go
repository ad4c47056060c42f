package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks issued refresh tokens so they can be revoked on
// logout. A refresh token is only honored while its session key lives.
type SessionStore interface {
	Put(ctx context.Context, userID, sessionID string, ttl time.Duration) error
	Exists(ctx context.Context, userID, sessionID string) (bool, error)
	Delete(ctx context.Context, userID, sessionID string) error
}

type redisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) SessionStore {
	return &redisSessionStore{rdb: rdb}
}

func sessionKey(userID, sessionID string) string {
	return fmt.Sprintf("session:%s:%s", userID, sessionID)
}

func (s *redisSessionStore) Put(ctx context.Context, userID, sessionID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKey(userID, sessionID), "1", ttl).Err()
}

func (s *redisSessionStore) Exists(ctx context.Context, userID, sessionID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, sessionKey(userID, sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, userID, sessionID string) error {
	return s.rdb.Del(ctx, sessionKey(userID, sessionID)).Err()
}
