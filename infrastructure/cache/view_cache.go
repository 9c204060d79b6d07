package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

// ViewCache stores values by token and forgets entries idle for longer than ttl.
type ViewCache[T any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*entry[T]
}

func NewViewCache[T any](ttl time.Duration) *ViewCache[T] {
	return &ViewCache[T]{ttl: ttl, now: time.Now, entries: make(map[string]*entry[T])}
}

func (c *ViewCache[T]) Add(token string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[token] = &entry[T]{value: value, lastSeen: c.now()}
}

// Find returns the value for token and refreshes its idle timer.
func (c *ViewCache[T]) Find(token string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[token]
	if !ok || c.expired(e) {
		delete(c.entries, token)
		var zero T
		return zero, false
	}
	e.lastSeen = c.now()
	return e.value, true
}

func (c *ViewCache[T]) Delete(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, token)
}

func (c *ViewCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Sweep drops expired entries and returns how many were removed.
func (c *ViewCache[T]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for token, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, token)
			removed++
		}
	}
	return removed
}

func (c *ViewCache[T]) expired(e *entry[T]) bool {
	return c.ttl > 0 && c.now().Sub(e.lastSeen) > c.ttl
}
