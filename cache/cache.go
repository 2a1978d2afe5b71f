// Package cache holds constructed model handles keyed by logical name.
package cache

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// Cache is a fixed-size, least-recently-used cache safe for concurrent use.
// It is cleared wholesale with Purge and never partially invalidated.
type Cache[T any] struct {
	lru      *lru.Cache
	capacity int
	purge    atomic.Bool
}

// New returns a cache holding at most capacity entries. onEvict, when not
// nil, is called for every entry dropped to make room. It is not called for
// entries dropped by Purge.
func New[T any](capacity int, onEvict func(name string, value T)) (*Cache[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("cache capacity must be positive, got %d", capacity)
	}
	c := &Cache[T]{capacity: capacity}
	var err error
	c.lru, err = lru.NewWithEvict(capacity, func(key, value interface{}) {
		if onEvict != nil && !c.purge.Load() {
			onEvict(key.(string), value.(T))
		}
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns the value cached under name and marks it as recently used.
func (c *Cache[T]) Get(name string) (T, bool) {
	v, ok := c.lru.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Add stores value under name, evicting the least recently used entry when
// the cache is full. It reports whether an eviction happened.
func (c *Cache[T]) Add(name string, value T) bool {
	return c.lru.Add(name, value)
}

// Purge drops every entry.
func (c *Cache[T]) Purge() {
	c.purge.Store(true)
	defer c.purge.Store(false)
	c.lru.Purge()
}

// Len returns the number of cached entries.
func (c *Cache[T]) Len() int { return c.lru.Len() }

// Capacity returns the maximum number of entries.
func (c *Cache[T]) Capacity() int { return c.capacity }
