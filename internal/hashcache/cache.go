// Package hashcache provides a sharded LRU cache keyed by hash, used
// by backends to deduplicate driver objects such as compiled pipelines
// and shader modules.
package hashcache

import (
	"sync"
	"sync/atomic"
)

const (
	// numShards is the shard count. Power of 2 so shard selection is a
	// bitwise AND.
	numShards = 16

	// DefaultCapacity is the per-shard entry limit used when the
	// caller passes a non-positive capacity.
	DefaultCapacity = 64

	shardMask = numShards - 1
)

// KeyHash maps a key to the digest used for shard selection.
type KeyHash[K any] func(K) uint64

// Cache is a thread-safe sharded LRU cache. Each shard carries its own
// lock, so lookups for distinct pipelines rarely contend.
type Cache[K comparable, V any] struct {
	shards   [numShards]*shard[K, V]
	keyHash  KeyHash[K]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]*entry[K, V]
	lru     lruList[K]
}

type entry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Len       int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// New returns a cache holding up to capacity entries per shard.
func New[K comparable, V any](capacity int, keyHash KeyHash[K]) *Cache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Cache[K, V]{keyHash: keyHash, capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{entries: make(map[K]*entry[K, V])}
	}
	return c
}

func (c *Cache[K, V]) shardFor(key K) *shard[K, V] {
	return c.shards[c.keyHash(key)&shardMask]
}

// Get returns the cached value for key and marks it recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)

	s.mu.RLock()
	_, exists := s.entries[key]
	s.mu.RUnlock()

	if !exists {
		c.misses.Add(1)
		var zero V
		return zero, false
	}

	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	s.lru.moveToFront(e.node)
	value := e.value
	s.mu.Unlock()

	c.hits.Add(1)
	return value, true
}

// Put stores value under key, evicting the least recently used entries
// if the shard is full. The value is stored as-is, not copied.
func (c *Cache[K, V]) Put(key K, value V) {
	s := c.shardFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[key]; ok {
		existing.value = value
		s.lru.moveToFront(existing.node)
		return
	}
	c.insertLocked(s, key, value)
}

// GetOrCreate returns the cached value for key, calling create to
// build it on a miss. create runs with the shard lock held so
// concurrent misses on the same key build the value once. If create
// fails, nothing is cached and the error is returned.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	s := c.shardFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		s.lru.moveToFront(e.node)
		c.hits.Add(1)
		return e.value, nil
	}

	c.misses.Add(1)
	value, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.insertLocked(s, key, value)
	return value, nil
}

func (c *Cache[K, V]) insertLocked(s *shard[K, V], key K, value V) {
	for s.lru.Len() >= c.capacity {
		oldest, ok := s.lru.removeOldest()
		if !ok {
			break
		}
		delete(s.entries, oldest)
		c.evictions.Add(1)
	}
	node := s.lru.pushFront(key)
	s.entries[key] = &entry[K, V]{value: value, node: node}
}

// Delete removes key from the cache.
func (c *Cache[K, V]) Delete(key K) bool {
	s := c.shardFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.lru.remove(e.node)
	delete(s.entries, key)
	return true
}

// Range calls fn for every cached value. Eviction order is not
// meaningful across shards. fn must not call back into the cache.
func (c *Cache[K, V]) Range(fn func(key K, value V)) {
	for _, s := range c.shards {
		s.mu.RLock()
		for k, e := range s.entries {
			fn(k, e.value)
		}
		s.mu.RUnlock()
	}
}

// Clear drops every entry.
func (c *Cache[K, V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[K]*entry[K, V])
		s.lru.clear()
		s.mu.Unlock()
	}
}

// Len returns the total number of entries across all shards.
func (c *Cache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}
	return total
}

// Capacity returns the per-shard entry limit.
func (c *Cache[K, V]) Capacity() int { return c.capacity }

// Stats returns a snapshot of the hit, miss, and eviction counters.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
