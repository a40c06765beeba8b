// internal/cache/lock.go
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker guards scheduled jobs so only one instance runs them per tick.
type Locker interface {
	TryAcquire(ctx context.Context, name, owner string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, name, owner string) error
}

const lockKeyPrefix = "scheduler:lock:"

type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) TryAcquire(ctx context.Context, name, owner string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, lockKeyPrefix+name, owner, ttl).Result()
}

// releaseScript deletes the lock only while it is still held by owner.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

func (l *RedisLocker) Release(ctx context.Context, name, owner string) error {
	return releaseScript.Run(ctx, l.client, []string{lockKeyPrefix + name}, owner).Err()
}

type localLock struct {
	owner   string
	expires time.Time
}

// LocalLocker serializes jobs inside one process.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]localLock
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]localLock)}
}

func (l *LocalLocker) TryAcquire(ctx context.Context, name, owner string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if held, ok := l.locks[name]; ok && now.Before(held.expires) {
		return false, nil
	}
	l.locks[name] = localLock{owner: owner, expires: now.Add(ttl)}
	return true, nil
}

func (l *LocalLocker) Release(ctx context.Context, name, owner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if held, ok := l.locks[name]; ok && held.owner == owner {
		delete(l.locks, name)
	}
	return nil
}
