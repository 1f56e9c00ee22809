package cache

import "sync"

// Cache is a generic thread-safe LRU cache with frame-based expiry.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*entry[K, V]
	order     recency[K, V]
	frame     uint64
	maxIdle   uint64
	softLimit int
	onEvict   func(K, V)

	hits      uint64
	misses    uint64
	evictions uint64
}

// New creates a cache whose entries expire after more than maxIdle frames
// without use. A softLimit of 0 means unlimited. onEvict, if non-nil, is
// called for every value that leaves the cache, outside the cache lock.
func New[K comparable, V any](maxIdle, softLimit int, onEvict func(K, V)) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*entry[K, V]),
		maxIdle:   uint64(max(maxIdle, 0)),
		softLimit: max(softLimit, 0),
		onEvict:   onEvict,
	}
}

// Get retrieves a value and marks it used in the current frame.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.touch(e)
	return e.value, true
}

// Set stores a value. A replaced value is passed to onEvict.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	var evicted []*entry[K, V]
	if old, ok := c.entries[key]; ok {
		evicted = append(evicted, &entry[K, V]{key: key, value: old.value})
		old.value = value
		c.touch(old)
	} else {
		c.insert(key, value)
		evicted = c.trim(evicted)
	}
	c.mu.Unlock()
	c.notify(evicted)
}

// GetOrCreate returns the cached value or stores the result of create.
// create runs under the cache lock, so concurrent callers never build the
// same key twice. A create error is returned and nothing is stored.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.hits++
		c.touch(e)
		c.mu.Unlock()
		return e.value, nil
	}
	c.misses++
	value, err := create()
	if err != nil {
		c.mu.Unlock()
		var zero V
		return zero, err
	}
	c.insert(key, value)
	evicted := c.trim(nil)
	c.mu.Unlock()
	c.notify(evicted)
	return value, nil
}

// Delete removes an entry. Returns true if the entry was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok {
		c.remove(e)
	}
	c.mu.Unlock()
	if ok {
		c.notify([]*entry[K, V]{e})
	}
	return ok
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	evicted := make([]*entry[K, V], 0, len(c.entries))
	for e := c.order.head; e != nil; e = e.next {
		evicted = append(evicted, e)
	}
	c.entries = make(map[K]*entry[K, V])
	c.order = recency[K, V]{}
	c.mu.Unlock()
	c.notify(evicted)
}

// EndFrame advances the frame counter and evicts entries idle for more
// than maxIdle frames. Returns the number of evicted entries.
func (c *Cache[K, V]) EndFrame() int {
	c.mu.Lock()
	c.frame++
	var evicted []*entry[K, V]
	for e := c.order.tail; e != nil && c.frame-e.used > c.maxIdle; e = c.order.tail {
		c.remove(e)
		evicted = append(evicted, e)
	}
	c.evictions += uint64(len(evicted))
	c.mu.Unlock()
	c.notify(evicted)
	return len(evicted)
}

// Frame returns the current frame number.
func (c *Cache[K, V]) Frame() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
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
		Capacity:  c.softLimit,
		Frame:     c.frame,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// Caller must hold c.mu.
func (c *Cache[K, V]) touch(e *entry[K, V]) {
	e.used = c.frame
	c.order.moveToFront(e)
}

// Caller must hold c.mu.
func (c *Cache[K, V]) insert(key K, value V) {
	e := &entry[K, V]{key: key, value: value, used: c.frame}
	c.entries[key] = e
	c.order.pushFront(e)
}

// Caller must hold c.mu.
func (c *Cache[K, V]) remove(e *entry[K, V]) {
	delete(c.entries, e.key)
	c.order.unlink(e)
}

// trim evicts least recently used entries above the soft limit.
// Caller must hold c.mu.
func (c *Cache[K, V]) trim(evicted []*entry[K, V]) []*entry[K, V] {
	if c.softLimit == 0 {
		return evicted
	}
	for len(c.entries) > c.softLimit && c.order.tail != nil {
		e := c.order.tail
		c.remove(e)
		evicted = append(evicted, e)
		c.evictions++
	}
	return evicted
}

func (c *Cache[K, V]) notify(evicted []*entry[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range evicted {
		c.onEvict(e.key, e.value)
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the soft limit, 0 if unlimited.
	Capacity int
	// Frame is the current frame number.
	Frame uint64
	// Hits is the number of lookups that found an entry.
	Hits uint64
	// Misses is the number of lookups that did not.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0 before any lookup.
	HitRate float64
	// Evictions counts entries removed by expiry or the soft limit.
	Evictions uint64
}
