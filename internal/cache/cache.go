package cache

import (
	"sync"
	"sync/atomic"
)

// shardCount must be a power of two.
const shardCount = 8

// Hasher maps a key to a hash used for shard selection.
type Hasher[K any] func(K) uint64

// Stats is a snapshot of cache counters.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns hits over lookups, or zero before the first lookup.
func (s Stats) HitRate() float64 {
	if total := s.Hits + s.Misses; total > 0 {
		return float64(s.Hits) / float64(total)
	}
	return 0
}

// LRU is a sharded least-recently-used cache.
type LRU[K comparable, V any] struct {
	shards   [shardCount]shard[K, V]
	hasher   Hasher[K]
	perShard int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	order   list[K]
}

type entry[K comparable, V any] struct {
	value V
	node  *node[K]
}

// New returns a cache holding about capacity entries in total. The
// capacity is split evenly across shards, at least one entry each.
func New[K comparable, V any](capacity int, hasher Hasher[K]) *LRU[K, V] {
	c := &LRU[K, V]{
		hasher:   hasher,
		perShard: max(1, (capacity+shardCount-1)/shardCount),
	}
	for i := range c.shards {
		c.shards[i].entries = make(map[K]*entry[K, V])
	}
	return c
}

func (c *LRU[K, V]) shardFor(key K) *shard[K, V] {
	return &c.shards[c.hasher(key)&(shardCount-1)]
}

// Get returns the value cached for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	s.order.moveToFront(e.node)
	c.hits.Add(1)
	return e.value, true
}

// Add stores value under key, evicting the shard's oldest entries when it
// is full. Values are stored as-is.
func (c *LRU[K, V]) Add(key K, value V) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.value = value
		s.order.moveToFront(e.node)
		return
	}
	for s.order.len >= c.perShard {
		oldest, ok := s.order.popBack()
		if !ok {
			break
		}
		delete(s.entries, oldest)
		c.evictions.Add(1)
	}
	s.entries[key] = &entry[K, V]{value: value, node: s.order.pushFront(key)}
}

// Remove deletes key and reports whether it was cached.
func (c *LRU[K, V]) Remove(key K) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.order.remove(e.node)
	delete(s.entries, key)
	return true
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// Stats returns the current counters.
func (c *LRU[K, V]) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Capacity:  c.perShard * shardCount,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
