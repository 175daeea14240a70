package cache

import "sync"

// Cache is a generic thread-safe LRU cache.
// When the cache exceeds its limit, least recently used entries are evicted.
//
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*node[K, V]
	head    *node[K, V] // most recently used
	tail    *node[K, V] // least recently used
	limit   int

	// OnEvict, if set, is called for every entry removed by eviction,
	// DropUnused or Clear. It runs with the cache lock held.
	OnEvict func(key K, value V)

	hits      uint64
	misses    uint64
	evictions uint64
}

// node is an entry in the recency list.
type node[K comparable, V any] struct {
	key   K
	value V
	used  bool // touched since the last ResetUsage
	prev  *node[K, V]
	next  *node[K, V]
}

// New creates a new cache holding at most limit entries.
// A limit of 0 means unlimited.
func New[K comparable, V any](limit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]*node[K, V]),
		limit:   limit,
	}
}

// Get retrieves a value from the cache and marks it as used.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	n.used = true
	c.moveToFront(n)
	return n.value, true
}

// Set stores a value in the cache and marks it as used.
// If the cache exceeds its limit after insertion, the oldest entries are
// evicted.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		n.value = value
		n.used = true
		c.moveToFront(n)
		return
	}

	n := &node[K, V]{key: key, value: value, used: true}
	c.entries[key] = n
	c.pushFront(n)

	for c.limit > 0 && len(c.entries) > c.limit {
		c.evict(c.tail)
		c.evictions++
	}
}

// Delete removes an entry from the cache without calling OnEvict.
// Returns true if the entry was found and removed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		return false
	}
	c.unlink(n)
	delete(c.entries, key)
	return true
}

// ResetUsage clears the used mark on every entry.
func (c *Cache[K, V]) ResetUsage() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for n := c.head; n != nil; n = n.next {
		n.used = false
	}
}

// DropUnused evicts every entry that was not read or written since the last
// ResetUsage. Returns the number of evicted entries.
func (c *Cache[K, V]) DropUnused() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for n := c.head; n != nil; {
		next := n.next
		if !n.used {
			c.evict(n)
			dropped++
		}
		n = next
	}
	c.evictions += uint64(dropped)
	return dropped
}

// Clear removes all entries from the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.OnEvict != nil {
		for n := c.head; n != nil; n = n.next {
			c.OnEvict(n.key, n.value)
		}
	}
	c.entries = make(map[K]*node[K, V])
	c.head, c.tail = nil, nil
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Capacity:  c.limit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// evict removes n from the cache and reports it to OnEvict.
// Caller must hold c.mu.
func (c *Cache[K, V]) evict(n *node[K, V]) {
	if n == nil {
		return
	}
	c.unlink(n)
	delete(c.entries, n.key)
	if c.OnEvict != nil {
		c.OnEvict(n.key, n.value)
	}
}

func (c *Cache[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *Cache[K, V]) moveToFront(n *node[K, V]) {
	if n == c.head {
		return
	}
	c.unlink(n)
	c.pushFront(n)
}

func (c *Cache[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the entry limit (0 = unlimited).
	Capacity int
	// Hits is the number of successful Get calls.
	Hits uint64
	// Misses is the number of failed Get calls.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0 when nothing was looked up.
	HitRate float64
	// Evictions is the number of entries removed by the limit or DropUnused.
	Evictions uint64
}
