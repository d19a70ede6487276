package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LRU is an in-process Store. Entries expire after ttl; the least recently
// used entry is evicted once size is reached.
type LRU[V any] struct {
	lru *expirable.LRU[string, V]
}

// NewLRU creates an LRU store. A zero ttl disables expiry.
func NewLRU[V any](size int, ttl time.Duration) *LRU[V] {
	if size <= 0 {
		size = 1024
	}
	return &LRU[V]{lru: expirable.NewLRU[string, V](size, nil, ttl)}
}

func (c *LRU[V]) Get(_ context.Context, key string) (V, bool, error) {
	v, ok := c.lru.Get(key)
	return v, ok, nil
}

func (c *LRU[V]) Set(_ context.Context, key string, value V) error {
	c.lru.Add(key, value)
	return nil
}

func (c *LRU[V]) Delete(_ context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// Len reports the number of live entries.
func (c *LRU[V]) Len() int { return c.lru.Len() }
