package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionRevocationStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionRevocationStore(16, time.Hour)

	revoked, err := store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.MarkRevoked(ctx, "abc", time.Now().Add(time.Hour)))
	revoked, err = store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "other")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	ok, err := l.TryAcquire(ctx, "digest", "a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = l.TryAcquire(ctx, "digest", "b", time.Minute)
	assert.False(t, ok)

	// Only the owner may release.
	require.NoError(t, l.Release(ctx, "digest", "b"))
	ok, _ = l.TryAcquire(ctx, "digest", "b", time.Minute)
	assert.False(t, ok)

	require.NoError(t, l.Release(ctx, "digest", "a"))
	ok, _ = l.TryAcquire(ctx, "digest", "b", time.Minute)
	assert.True(t, ok)
}

func TestLocalLockerExpires(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	ok, _ := l.TryAcquire(ctx, "digest", "a", -time.Second)
	assert.True(t, ok)
	ok, _ = l.TryAcquire(ctx, "digest", "b", time.Minute)
	assert.True(t, ok)
}

func TestTTLCache(t *testing.T) {
	c := NewTTLCache[string, int]("test_cache", 4, time.Minute)

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Set("k", 7)
	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}
