// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

// Package cache provides a bounded least-recently-used cache.
package cache

import "sync"

// DefaultCapacity is used when NewLRU is given a non-positive capacity.
const DefaultCapacity = 1024

// lruEntry is a node in the recency list.
type lruEntry[V any] struct {
	key   string
	value V
	prev  *lruEntry[V]
	next  *lruEntry[V]
}

// LRU is a thread-safe Least Recently Used cache of values keyed by string.
// Get, Add and eviction are O(1).
//
// It uses a doubly-linked list for ordering and a hashmap for lookups.
// Entries never expire; they leave the cache only by eviction or Remove.
type LRU[V any] struct {
	mu sync.Mutex

	capacity int
	items    map[string]*lruEntry[V]

	// head.next is the most recently used, tail.prev is the least recently used
	head *lruEntry[V]
	tail *lruEntry[V]

	hits   int64
	misses int64
}

// NewLRU creates a cache holding at most capacity entries.
func NewLRU[V any](capacity int) *LRU[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	c := &LRU[V]{
		capacity: capacity,
		items:    make(map[string]*lruEntry[V], capacity),
		head:     &lruEntry[V]{},
		tail:     &lruEntry[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head

	return c
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok {
		c.moveToFront(entry)
		c.hits++
		return entry.value, true
	}

	c.misses++
	var zero V
	return zero, false
}

// Add stores value under key. If the cache is at capacity, the least
// recently used entry is evicted.
func (c *LRU[V]) Add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok {
		entry.value = value
		c.moveToFront(entry)
		return
	}

	entry := &lruEntry[V]{key: key, value: value}
	c.addToFront(entry)
	c.items[key] = entry

	for len(c.items) > c.capacity {
		c.evictOldest()
	}
}

// GetOrAdd returns the cached value for key, or computes it with fn, stores
// it and returns it. fn runs without the lock held and may run more than once
// for the same key under contention; the first stored value wins.
func (c *LRU[V]) GetOrAdd(key string, fn func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := fn()

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.items[key]; ok {
		c.moveToFront(entry)
		return entry.value
	}
	entry := &lruEntry[V]{key: key, value: v}
	c.addToFront(entry)
	c.items[key] = entry
	for len(c.items) > c.capacity {
		c.evictOldest()
	}
	return v
}

// Remove removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok {
		c.removeEntry(entry)
		return true
	}
	return false
}

// Len returns the current number of entries in the cache.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns cache hit/miss statistics.
func (c *LRU[V]) Stats() (hits, misses int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.items)
}

// Internal methods (must be called with lock held)

func (c *LRU[V]) addToFront(entry *lruEntry[V]) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *LRU[V]) moveToFront(entry *lruEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.addToFront(entry)
}

func (c *LRU[V]) removeEntry(entry *lruEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.key)
}

func (c *LRU[V]) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return // List is empty
	}
	c.removeEntry(oldest)
}
