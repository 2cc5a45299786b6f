package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a thread-safe in-memory TTL cache. Concurrent loads of the same
// missing key are collapsed into a single call.
type Cache[V any] struct {
	mu      sync.RWMutex
	items   map[string]*item[V]
	group   singleflight.Group
	sliding bool
	onEvict func(key string, value V)

	cleanupInterval time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
	now             func() time.Time
}

type item[V any] struct {
	value      V
	ttl        time.Duration
	expiration time.Time
}

// Option configures a Cache
type Option[V any] func(*Cache[V])

// WithCleanupInterval sets how often expired items are swept. Zero disables the sweeper.
func WithCleanupInterval[V any](interval time.Duration) Option[V] {
	return func(c *Cache[V]) {
		c.cleanupInterval = interval
	}
}

// WithSlidingExpiration extends an item's lifetime by its TTL on every Get
func WithSlidingExpiration[V any]() Option[V] {
	return func(c *Cache[V]) {
		c.sliding = true
	}
}

// WithOnEvict registers a callback for items removed by expiry
func WithOnEvict[V any](fn func(key string, value V)) Option[V] {
	return func(c *Cache[V]) {
		c.onEvict = fn
	}
}

func withClock[V any](now func() time.Time) Option[V] {
	return func(c *Cache[V]) {
		c.now = now
	}
}

// New creates a cache. Call Stop to release the sweeper goroutine.
func New[V any](opts ...Option[V]) *Cache[V] {
	c := &Cache[V]{
		items:           make(map[string]*item[V]),
		cleanupInterval: time.Minute,
		stop:            make(chan struct{}),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cleanupInterval > 0 {
		go c.sweep()
	}
	return c
}

// Get returns the value for key if present and not expired
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if c.sliding {
		c.mu.Lock()
		defer c.mu.Unlock()
	} else {
		c.mu.RLock()
		defer c.mu.RUnlock()
	}

	it, ok := c.items[key]
	if !ok || !c.now().Before(it.expiration) {
		return zero, false
	}
	if c.sliding {
		it.expiration = c.now().Add(it.ttl)
	}
	return it.value, true
}

// Set stores value for ttl
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = &item[V]{value: value, ttl: ttl, expiration: c.now().Add(ttl)}
}

// GetOrLoad returns the cached value or calls load once for all concurrent callers
// of the same key. Errors are returned to every waiting caller and not cached.
func (c *Cache[V]) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) (V, error)) (V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		if value, ok := c.Get(key); ok {
			return value, nil
		}
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, value, ttl)
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Delete removes key without calling the eviction callback
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Len counts stored items, including expired ones not yet swept
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Purge removes expired items and reports how many were removed
func (c *Cache[V]) Purge() int {
	type evicted struct {
		key   string
		value V
	}

	c.mu.Lock()
	now := c.now()
	var removed []evicted
	for key, it := range c.items {
		if !now.Before(it.expiration) {
			removed = append(removed, evicted{key, it.value})
			delete(c.items, key)
		}
	}
	c.mu.Unlock()

	if c.onEvict != nil {
		for _, e := range removed {
			c.onEvict(e.key, e.value)
		}
	}
	return len(removed)
}

// Stop ends the sweeper. It is safe to call more than once.
func (c *Cache[V]) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}

func (c *Cache[V]) sweep() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Purge()
		case <-c.stop:
			return
		}
	}
}
