// Package cache provides a sharded LRU cache.
//
// Keys are spread over a fixed number of shards by a caller-supplied hash so
// that concurrent decoders rarely contend on one lock. Each shard evicts its
// least recently used entry once it is full.
//
//	c := cache.New[digest, any](64, digestHash)
//	c.Add(key, value)
//	value, ok := c.Get(key)
//
// The cache is safe for concurrent use and must not be copied.
package cache
