// Package cache provides a small in-memory key/value store bounded by both
// entry count and age. It fronts the persistent store on read-heavy paths.
//
// Eviction is by insertion order: when the capacity bound is exceeded the
// oldest-inserted entry is dropped first. Reads do not refresh an entry's
// position (this is deliberately not LRU-on-read). Entries older than the
// TTL report a miss and are removed lazily.
package cache

import (
	"container/list"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultTTL bounds how stale a cached read may be.
	DefaultTTL = 5 * time.Minute
	// DefaultCapacity bounds the number of distinct keys held.
	DefaultCapacity = 100
)

type entry[V any] struct {
	key        string
	value      V
	insertedAt time.Time
}

// Cache is a mutex-guarded, TTL- and capacity-bounded key/value store.
// The zero value is not usable; construct with New.
type Cache[V any] struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	order    *list.List // front = oldest inserted
	items    map[string]*list.Element

	// now is swappable for tests.
	now func() time.Time
}

// New creates a cache with the given TTL and capacity. Non-positive
// arguments fall back to the defaults.
func New[V any](ttl time.Duration, capacity int) *Cache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache[V]{
		ttl:      ttl,
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
		now:      time.Now,
	}
}

// Get returns the value for key if present and within the TTL window.
// Expired entries are removed and report a miss; the caller cannot
// distinguish "never cached" from "expired".
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		return zero, false
	}
	e := el.Value.(*entry[V])
	if c.now().Sub(e.insertedAt) > c.ttl {
		c.remove(el)
		return zero, false
	}
	return e.value, true
}

// Set inserts or overwrites the entry for key with a fresh timestamp.
// An overwrite counts as a re-insertion and moves the key to the back of
// the eviction order. If the capacity bound would be exceeded the oldest
// entry is evicted first.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry[V])
		e.value = value
		e.insertedAt = c.now()
		c.order.MoveToBack(el)
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Front(); oldest != nil {
			c.remove(oldest)
		}
	}

	el := c.order.PushBack(&entry[V]{key: key, value: value, insertedAt: c.now()})
	c.items[key] = el
}

// Invalidate removes every entry whose key starts with prefix and returns
// how many were dropped.
func (c *Cache[V]) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for key, el := range c.items {
		if strings.HasPrefix(key, prefix) {
			c.remove(el)
			dropped++
		}
	}
	return dropped
}

// InvalidateAll clears the cache.
func (c *Cache[V]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[string]*list.Element)
}

// Len returns the current number of entries, including any that have
// expired but not yet been touched.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Capacity returns the configured entry bound.
func (c *Cache[V]) Capacity() int {
	return c.capacity
}

// remove must be called with c.mu held.
func (c *Cache[V]) remove(el *list.Element) {
	e := el.Value.(*entry[V])
	c.order.Remove(el)
	delete(c.items, e.key)
}
