// internal/cache/lru.go
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "licensing_cache_hits_total",
		Help: "Total number of in-memory cache hits.",
	}, []string{"cache"})
	cacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "licensing_cache_misses_total",
		Help: "Total number of in-memory cache misses.",
	}, []string{"cache"})
)

// TTLCache is an expiring LRU that reports hits and misses under its name.
type TTLCache[K comparable, V any] struct {
	name  string
	cache *expirable.LRU[K, V]
}

func NewTTLCache[K comparable, V any](name string, maxSize int, ttl time.Duration) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		name:  name,
		cache: expirable.NewLRU[K, V](maxSize, nil, ttl),
	}
}

func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	val, ok := c.cache.Get(key)
	if ok {
		cacheHitsTotal.WithLabelValues(c.name).Inc()
		return val, true
	}
	cacheMissesTotal.WithLabelValues(c.name).Inc()
	return val, false
}

func (c *TTLCache[K, V]) Set(key K, value V) {
	c.cache.Add(key, value)
}
