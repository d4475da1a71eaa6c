package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Clock lets tests control expiry.
type Clock func() time.Time

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is an in-memory key/value store where every entry expires a
// fixed TTL after it was set.
type TTLCache[V any] struct {
	mu      sync.RWMutex
	items   map[string]entry[V]
	ttl     time.Duration
	cleanup time.Duration
	now     Clock
	stop    context.CancelFunc
	// gen counts invalidations so GetOrSet can drop values fetched
	// across one.
	gen uint64
}

type Option[V any] func(*TTLCache[V])

func WithClock[V any](clock Clock) Option[V] {
	return func(c *TTLCache[V]) { c.now = clock }
}

func New[V any](ttl, cleanupFreq time.Duration, opts ...Option[V]) *TTLCache[V] {
	c := &TTLCache[V]{
		items:   make(map[string]entry[V]),
		ttl:     ttl,
		cleanup: cleanupFreq,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	c.items[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// GetOrSet returns the cached value for key, calling fetch on a miss.
// Errors from fetch are returned and nothing is stored. A value fetched
// while Delete or DeletePrefix ran is returned but not stored.
func (c *TTLCache[V]) GetOrSet(key string, fetch func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()

	v, err := fetch()
	if err != nil {
		return v, err
	}

	c.mu.Lock()
	if c.gen == gen {
		c.items[key] = entry[V]{value: v, expiresAt: c.now().Add(c.ttl)}
	}
	c.mu.Unlock()
	return v, nil
}

func (c *TTLCache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.gen++
	c.mu.Unlock()
}

// DeletePrefix drops every key starting with prefix.
func (c *TTLCache[V]) DeletePrefix(prefix string) {
	c.mu.Lock()
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	c.gen++
	c.mu.Unlock()
}

func (c *TTLCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Purge removes expired entries.
func (c *TTLCache[V]) Purge() {
	now := c.now()
	c.mu.Lock()
	for k, e := range c.items {
		if !now.Before(e.expiresAt) {
			delete(c.items, k)
		}
	}
	c.mu.Unlock()
}

// StartCleanup purges expired entries every cleanup interval until ctx is
// done or Close is called.
func (c *TTLCache[V]) StartCleanup(ctx context.Context) {
	if c.cleanup <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.stop = cancel
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(c.cleanup)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Purge()
			}
		}
	}()
}

func (c *TTLCache[V]) Close() {
	c.mu.Lock()
	stop := c.stop
	c.stop = nil
	c.mu.Unlock()
	if stop != nil {
		stop()
	}
}
