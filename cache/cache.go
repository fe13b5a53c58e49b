package cache

import (
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is the number of shards. It is a power of two so the
	// shard index is a mask of the key hash.
	ShardCount = 16

	// DefaultCapacity is the default number of entries per shard.
	DefaultCapacity = 64

	shardMask = ShardCount - 1
)

// Cache maps absolute file paths to parse results of type V.
// It is safe for concurrent use.
type Cache[V any] struct {
	shards   [ShardCount]*shard[V]
	capacity int

	hits          atomic.Uint64
	misses        atomic.Uint64
	evictions     atomic.Uint64
	invalidations atomic.Uint64
}

type shard[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	lru     *lruList
}

type entry[V any] struct {
	digest uint64
	value  V
	node   *lruNode
}

// New returns a cache holding up to capacity entries per shard.
// If capacity <= 0, DefaultCapacity is used.
func New[V any](capacity int) *Cache[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Cache[V]{capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &shard[V]{
			entries: make(map[string]*entry[V]),
			lru:     newLRUList(),
		}
	}
	return c
}

func (c *Cache[V]) shardFor(key string) *shard[V] {
	h := fnv.New64a()
	_, _ = io.WriteString(h, key)
	return c.shards[h.Sum64()&shardMask]
}

// Lookup returns the value stored for key if it was stored with digest.
// An entry with another digest is stale: it is removed and Lookup
// reports a miss.
//
// The returned value is shared with the cache; callers must not modify it.
func (c *Cache[V]) Lookup(key string, digest uint64) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok && e.digest != digest {
		s.lru.Remove(e.node)
		delete(s.entries, key)
		c.invalidations.Add(1)
		ok = false
	}
	if !ok {
		s.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	s.lru.MoveToFront(e.node)
	v := e.value
	s.mu.Unlock()

	c.hits.Add(1)
	return v, true
}

// Store records value for key at digest, replacing any previous entry.
// The least recently used entries of the shard are evicted beyond capacity.
func (c *Cache[V]) Store(key string, digest uint64, value V) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.digest = digest
		e.value = value
		s.lru.MoveToFront(e.node)
		return
	}

	for s.lru.Len() >= c.capacity {
		oldest, ok := s.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(s.entries, oldest)
		c.evictions.Add(1)
	}

	s.entries[key] = &entry[V]{
		digest: digest,
		value:  value,
		node:   s.lru.PushFront(key),
	}
}

// Invalidate removes key and reports whether it was present.
func (c *Cache[V]) Invalidate(key string) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.lru.Remove(e.node)
	delete(s.entries, key)
	c.invalidations.Add(1)
	return true
}

// Clear removes all entries. Statistics are kept.
func (c *Cache[V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[string]*entry[V])
		s.lru.Clear()
		s.mu.Unlock()
	}
}

// Len returns the number of entries across all shards.
func (c *Cache[V]) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the total capacity across all shards.
	Capacity int
	// Hits and Misses count Lookup results.
	Hits   uint64
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0 before the first lookup.
	HitRate float64
	// Evictions counts entries dropped for capacity.
	Evictions uint64
	// Invalidations counts entries dropped for a changed digest or by
	// Invalidate.
	Invalidations uint64
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache[V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}

	return Stats{
		Len:           c.Len(),
		Capacity:      c.capacity * ShardCount,
		Hits:          hits,
		Misses:        misses,
		HitRate:       rate,
		Evictions:     c.evictions.Load(),
		Invalidations: c.invalidations.Load(),
	}
}

// Key returns the cache key for path: its cleaned absolute form.
func Key(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cache: resolve %s: %w", path, err)
	}
	return abs, nil
}

// Digest returns the FNV-1a digest of data.
func Digest(data []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return h.Sum64()
}

// DigestFile returns the FNV-1a digest of the file at path.
func DigestFile(path string) (uint64, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return 0, fmt.Errorf("cache: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := fnv.New64a()
	if _, err := io.Copy(h, f); err != nil {
		return 0, fmt.Errorf("cache: read %s: %w", path, err)
	}
	return h.Sum64(), nil
}
