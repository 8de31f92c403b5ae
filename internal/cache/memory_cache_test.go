package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(10, 0)

	_, ok := c.Get("missing")
	assert.False(t, ok)
	assert.False(t, c.Has("missing"))

	c.Set("foo", []byte("bar"))
	value, ok := c.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, []byte("bar"), value)
	assert.True(t, c.Has("foo"))
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewMemoryCache(2, 0)

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	_, _ = c.Get("a")
	c.Set("c", []byte("3"))

	assert.True(t, c.Has("a"))
	assert.False(t, c.Has("b"))
	assert.True(t, c.Has("c"))
}

func TestMemoryCacheUnbounded(t *testing.T) {
	c := NewMemoryCache(0, 0)
	for i := 0; i < 1000; i++ {
		c.Set(fmt.Sprintf("key-%d", i), []byte{byte(i)})
	}
	assert.Equal(t, 1000, c.Len())
}

func TestMemoryCacheTTL(t *testing.T) {
	c := NewMemoryCache(10, 20*time.Millisecond)
	c.Set("foo", []byte("bar"))
	assert.True(t, c.Has("foo"))

	assert.Eventually(t, func() bool {
		_, ok := c.Get("foo")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	c.Set("foo", []byte("bar"))
	_, ok := c.Get("foo")
	assert.False(t, ok)
	assert.False(t, c.Has("foo"))
}
