package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCache implements an in-memory LRU cache with optional expiration
type MemoryCache struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemoryCache creates a new in-memory LRU cache. A maxSize of 0 disables
// the capacity bound and a ttl of 0 disables expiration.
func NewMemoryCache(maxSize int, ttl time.Duration) *MemoryCache {
	if maxSize < 0 {
		maxSize = 0
	}
	return &MemoryCache{
		lru: expirable.NewLRU[string, []byte](maxSize, nil, ttl),
	}
}

func (c *MemoryCache) Has(key string) bool {
	return c.lru.Contains(key)
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	return c.lru.Get(key)
}

func (c *MemoryCache) Set(key string, value []byte) {
	c.lru.Add(key, value)
}

func (c *MemoryCache) Len() int {
	return c.lru.Len()
}
