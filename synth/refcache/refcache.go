// Package refcache provides a bounded, thread-safe LRU cache for reference
// artifacts keyed by caller-supplied identifiers. It avoids redundant
// preprocessing when the same reference audio is reused across requests.
package refcache

import (
	"container/list"
	"sync"
)

// DefaultCapacity is the entry limit used when no capacity is configured.
const DefaultCapacity = 50

// Cache is an entry-bounded LRU cache. All operations are safe for
// concurrent use; a single mutex guards each operation.
type Cache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List // front is most recently used
}

type entry struct {
	key      string
	artifact any
}

// New creates a cache holding at most capacity entries. A non-positive
// capacity falls back to DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the artifact stored under key. A hit counts as a touch and
// moves the entry to the most-recently-used position.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*entry).artifact, true
}

// Put stores artifact under key. An existing key has its value replaced
// and its recency refreshed. Inserting a new key at capacity evicts the
// least-recently-used entry first.
func (c *Cache) Put(key string, artifact any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*entry).artifact = artifact
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			delete(c.items, oldest.Value.(*entry).key)
			c.order.Remove(oldest)
		}
	}

	c.items[key] = c.order.PushFront(&entry{key: key, artifact: artifact})
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.order.Init()
}

// Len returns the current number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Capacity returns the configured entry limit.
func (c *Cache) Capacity() int {
	return c.capacity
}
