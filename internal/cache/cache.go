// Package cache is a small bounded cache that evicts the oldest entry.
package cache

type Cache[K comparable, V any] struct {
	entries map[K]*Entry[K, V]
	order   []K
	max     int
}

type Entry[K comparable, V any] struct {
	Key K
	Val V
}

func New[K comparable, V any](max int) Cache[K, V] {
	return Cache[K, V]{
		entries: make(map[K]*Entry[K, V]),
		max:     max,
	}
}

func (c Cache[K, V]) Get(key K) *Entry[K, V] {
	entry, ok := c.entries[key]
	if !ok {
		return nil
	}
	return entry
}

func (c *Cache[K, V]) Set(key K, val V) *Entry[K, V] {
	entry := c.Get(key)
	if entry != nil {
		entry.Val = val
		return entry
	}

	c.evictOldestIfFull()

	entry = &Entry[K, V]{Key: key, Val: val}
	c.entries[key] = entry
	c.order = append(c.order, key)
	return entry
}

func (c *Cache[K, V]) evictOldestIfFull() {
	if len(c.order) < c.max {
		return
	}

	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *Cache[K, V]) Del(key K) {
	if _, ok := c.entries[key]; !ok {
		return
	}

	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}

func (c *Cache[K, V]) Clear() {
	c.entries = make(map[K]*Entry[K, V])
	c.order = nil
}
