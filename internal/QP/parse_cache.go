package QP

import (
	"container/list"
	"sync"
)

// ParseCache is a fixed-capacity LRU of expression trees keyed by source
// text. Trees are not mutated after parsing, so one tree may be evaluated
// any number of times.
type ParseCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	list     *list.List
	hits     uint64
	misses   uint64
}

type parseCacheEntry struct {
	key  string
	expr Expr
}

func NewParseCache(capacity int) *ParseCache {
	if capacity < 1 {
		capacity = 1
	}
	return &ParseCache{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		list:     list.New(),
	}
}

func (c *ParseCache) Get(key string) (Expr, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.hits++
		c.list.MoveToFront(el)
		return el.Value.(*parseCacheEntry).expr, true
	}
	c.misses++
	return nil, false
}

func (c *ParseCache) Set(key string, expr Expr) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.list.MoveToFront(el)
		el.Value.(*parseCacheEntry).expr = expr
		return
	}
	if c.list.Len() >= c.capacity {
		if back := c.list.Back(); back != nil {
			c.list.Remove(back)
			delete(c.items, back.Value.(*parseCacheEntry).key)
		}
	}
	c.items[key] = c.list.PushFront(&parseCacheEntry{key: key, expr: expr})
}

func (c *ParseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Len()
}

// Stats returns the lookup counters since creation.
func (c *ParseCache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
