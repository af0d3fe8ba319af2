package cache

import (
	"testing"

	"github.com/hupe1980/ppjoin/internal/resource"
	"github.com/stretchr/testify/assert"
)

func TestLRU(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 100})
	c := NewLRU(50, rc)

	c.Set("a", make([]byte, 20))
	assert.Equal(t, int64(20), c.Size())
	assert.Equal(t, int64(20), rc.MemoryUsage())

	c.Set("b", make([]byte, 20))
	assert.Equal(t, int64(40), c.Size())

	// Touch a so that b is the eviction victim.
	_, ok := c.Get("a")
	assert.True(t, ok)

	c.Set("c", make([]byte, 20))
	assert.Equal(t, int64(40), c.Size())
	assert.Equal(t, int64(40), rc.MemoryUsage())

	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestLRU_Replace(t *testing.T) {
	c := NewLRU(100, nil)

	c.Set("a", []byte("one"))
	c.Set("a", []byte("three"))

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "three", string(v))
	assert.Equal(t, int64(5), c.Size())
	assert.Equal(t, 1, c.Len())
}

func TestLRU_TooLarge(t *testing.T) {
	c := NewLRU(10, nil)
	c.Set("big", make([]byte, 11))
	assert.Equal(t, 0, c.Len())
}

func TestLRU_ControllerRefuses(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 10})
	c := NewLRU(100, rc)

	c.Set("a", make([]byte, 8))
	c.Set("b", make([]byte, 8))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int64(8), rc.MemoryUsage())
}

func TestLRU_Remove(t *testing.T) {
	rc := resource.NewController(resource.Config{})
	c := NewLRU(100, rc)

	c.Set("a", make([]byte, 8))
	c.Remove("a")
	c.Remove("missing")

	assert.Equal(t, 0, c.Len())
	assert.Zero(t, rc.MemoryUsage())
}
