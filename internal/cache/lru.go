// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides the LRU cache backing renderer pixmap caches.
package cache

import "container/list"

// DefaultCapacity is the capacity used when none is given.
const DefaultCapacity = 256

// Stats reports cache usage.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	if total := s.Hits + s.Misses; total > 0 {
		return float64(s.Hits) / float64(total)
	}
	return 0
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// LRU is a fixed-capacity cache evicting the least recently used entry.
// Renderers own their cache and use it from the rendering thread only, so
// LRU is not safe for concurrent use.
type LRU[K comparable, V any] struct {
	capacity int
	order    *list.List
	entries  map[K]*list.Element

	// OnEvict, when set, is called for every entry dropped to make room.
	OnEvict func(K, V)

	hits, misses, evictions uint64
}

// New creates a cache holding at most capacity entries. If capacity <= 0,
// DefaultCapacity is used.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU[K, V]{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[K]*list.Element),
	}
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	el, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.MoveToFront(el)
	return el.Value.(*entry[K, V]).value, true
}

// Set stores value under key, evicting the oldest entries when full.
func (c *LRU[K, V]) Set(key K, value V) {
	if el, ok := c.entries[key]; ok {
		el.Value.(*entry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}
	for c.order.Len() >= c.capacity {
		c.evictOldest()
	}
	c.entries[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
}

// GetOrCreate returns the cached value or stores the result of create.
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := create()
	c.Set(key, v)
	return v
}

// Delete removes key and reports whether it was present.
func (c *LRU[K, V]) Delete(key K) bool {
	el, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.Remove(el)
	delete(c.entries, key)
	return true
}

// Clear removes every entry without calling OnEvict.
func (c *LRU[K, V]) Clear() {
	c.order.Init()
	clear(c.entries)
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int { return c.order.Len() }

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int { return c.capacity }

// Stats returns usage counters.
func (c *LRU[K, V]) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

func (c *LRU[K, V]) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	e := c.order.Remove(el).(*entry[K, V])
	delete(c.entries, e.key)
	c.evictions++
	if c.OnEvict != nil {
		c.OnEvict(e.key, e.value)
	}
}
