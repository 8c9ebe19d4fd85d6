package shape

import (
	"fmt"
	"sync"
)

// Cache is a concurrency-safe memo table. The factory for a key runs once
// while its result is cached, even under concurrent access; concurrent
// callers wait for the first one. Failed factories are not cached.
type Cache[K comparable, V any] struct {
	m sync.Map // map[K]*CacheEntry[V]
}

// CacheEntry holds the memoized result for one key.
type CacheEntry[V any] struct {
	ready chan struct{} // closed once value and err are set
	value V
	err   error
}

// NewCache creates an empty Cache.
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{}
}

// GetOrCreate returns the cached value for key, calling factory to build it
// if it is not cached yet.
func (c *Cache[K, V]) GetOrCreate(key K, factory func() (V, error)) (V, error) {
	if v, ok := c.m.Load(key); ok {
		entry := v.(*CacheEntry[V])
		<-entry.ready
		if entry.err == nil {
			return entry.value, nil
		}
	}

	fresh := &CacheEntry[V]{ready: make(chan struct{})}
	actual, loaded := c.m.LoadOrStore(key, fresh)
	entry := actual.(*CacheEntry[V])

	if loaded {
		<-entry.ready
	} else {
		c.build(key, entry, factory)
	}

	if entry.err != nil {
		var zero V
		return zero, entry.err
	}
	return entry.value, nil
}

// build runs factory for entry. Waiters are released even if factory
// panics; the panic is recorded as the entry's error and re-raised.
func (c *Cache[K, V]) build(key K, entry *CacheEntry[V], factory func() (V, error)) {
	defer func() {
		if r := recover(); r != nil {
			entry.err = fmt.Errorf("%w: %v", ErrFactoryPanic, r)
			close(entry.ready)
			c.m.CompareAndDelete(key, entry)
			panic(r)
		}
		close(entry.ready)
		if entry.err != nil {
			c.m.CompareAndDelete(key, entry)
		}
	}()
	entry.value, entry.err = factory()
}

// Get returns the cached value for key if one has been built successfully.
// It never waits for a factory still in progress.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V
	v, ok := c.m.Load(key)
	if !ok {
		return zero, false
	}
	entry := v.(*CacheEntry[V])
	select {
	case <-entry.ready:
	default:
		return zero, false
	}
	if entry.err != nil {
		return zero, false
	}
	return entry.value, true
}

// Delete removes the entry for key.
func (c *Cache[K, V]) Delete(key K) {
	c.m.Delete(key)
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.m.Clear()
}

// Len counts the entries, including ones still being built.
func (c *Cache[K, V]) Len() int {
	n := 0
	c.m.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}
