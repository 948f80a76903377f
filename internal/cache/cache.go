package cache

import (
	"container/list"
)

// LRU is a fixed capacity least recently used cache. It is not safe for
// concurrent use.
type LRU[K comparable, V any] struct {
	size      int
	evictList *list.List
	items     map[K]*list.Element
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

func NewLRU[K comparable, V any](size int) *LRU[K, V] {
	if size < 1 {
		size = 1
	}
	return &LRU[K, V]{
		size:      size,
		evictList: list.New(),
		items:     make(map[K]*list.Element),
	}
}

func (c *LRU[K, V]) Get(key K) (value V, ok bool) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		return ele.Value.(*entry[K, V]).value, true
	}
	return
}

func (c *LRU[K, V]) Put(key K, value V) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		ele.Value.(*entry[K, V]).value = value
		return
	}

	ele := c.evictList.PushFront(&entry[K, V]{key, value})
	c.items[key] = ele

	if c.evictList.Len() > c.size {
		c.removeOldest()
	}
}

func (c *LRU[K, V]) Remove(key K) {
	if ele, hit := c.items[key]; hit {
		c.removeElement(ele)
	}
}

func (c *LRU[K, V]) Len() int {
	return c.evictList.Len()
}

func (c *LRU[K, V]) removeOldest() {
	ele := c.evictList.Back()
	if ele != nil {
		c.removeElement(ele)
	}
}

func (c *LRU[K, V]) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	kv := e.Value.(*entry[K, V])
	delete(c.items, kv.key)
}
