package cache

import (
	"container/list"
	"sync"
	"time"
)

// LRUCache is the bounded TTL cache behind the API's response store.
// Writes refresh both recency and expiry, so a hot entry survives the
// size bound but never outlives its TTL.
type LRUCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	index   map[string]*list.Element
	order   *list.List // front = most recently used
}

type entry[T any] struct {
	key       string
	value     T
	expiresAt time.Time
}

// NewLRUCache creates a cache holding at most maxSize entries, each
// valid for ttl after its last Set.
func NewLRUCache[T any](maxSize int, ttl time.Duration) *LRUCache[T] {
	return &LRUCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		index:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Get returns the live entry for key. An expired entry is evicted on
// the spot and reported as a miss.
func (c *LRUCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, ok := c.index[key]
	if !ok {
		return zero, false
	}

	ent := elem.Value.(*entry[T])
	if time.Now().After(ent.expiresAt) {
		c.evict(elem)
		return zero, false
	}

	c.order.MoveToFront(elem)
	return ent.value, true
}

// Set stores value under key, refreshing expiry on overwrite. When the
// cache is full the least recently used entry makes room.
func (c *LRUCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent := &entry[T]{key: key, value: value, expiresAt: time.Now().Add(c.ttl)}

	if elem, ok := c.index[key]; ok {
		elem.Value = ent
		c.order.MoveToFront(elem)
		return
	}

	c.index[key] = c.order.PushFront(ent)
	if c.order.Len() > c.maxSize {
		if oldest := c.order.Back(); oldest != nil {
			c.evict(oldest)
		}
	}
}

// CleanExpired drops every expired entry and reports how many went.
// Satisfies the Cleaner interface for the cleanup Manager.
func (c *LRUCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		if now.After(elem.Value.(*entry[T]).expiresAt) {
			c.evict(elem)
			removed++
		}
		elem = next
	}
	return removed
}

// Size returns the number of entries currently held, expired or not.
func (c *LRUCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

func (c *LRUCache[T]) evict(elem *list.Element) {
	delete(c.index, elem.Value.(*entry[T]).key)
	c.order.Remove(elem)
}
