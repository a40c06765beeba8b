// internal/cache/session.go
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

// SessionRevocationStore remembers signed-out session ids until their
// tokens would have expired anyway.
type SessionRevocationStore interface {
	MarkRevoked(ctx context.Context, sessionID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

const revokedKeyPrefix = "auth:revoked:"

type RedisSessionRevocationStore struct {
	client *redis.Client
}

func NewRedisSessionRevocationStore(client *redis.Client) *RedisSessionRevocationStore {
	return &RedisSessionRevocationStore{client: client}
}

func (s *RedisSessionRevocationStore) MarkRevoked(ctx context.Context, sessionID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		ttl = time.Hour
	}
	return s.client.Set(ctx, revokedKeyPrefix+sessionID, "1", ttl).Err()
}

func (s *RedisSessionRevocationStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemorySessionRevocationStore is the single-instance fallback used when no
// Redis URL is configured. Entries live for the maximum session lifetime.
type MemorySessionRevocationStore struct {
	revoked *expirable.LRU[string, time.Time]
}

func NewMemorySessionRevocationStore(size int, sessionTTL time.Duration) *MemorySessionRevocationStore {
	return &MemorySessionRevocationStore{
		revoked: expirable.NewLRU[string, time.Time](size, nil, sessionTTL),
	}
}

func (s *MemorySessionRevocationStore) MarkRevoked(ctx context.Context, sessionID string, expiresAt time.Time) error {
	s.revoked.Add(sessionID, expiresAt)
	return nil
}

func (s *MemorySessionRevocationStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	expiresAt, ok := s.revoked.Get(sessionID)
	if !ok {
		return false, nil
	}
	if time.Now().After(expiresAt) {
		s.revoked.Remove(sessionID)
		return false, nil
	}
	return true, nil
}
