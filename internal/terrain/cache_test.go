package terrain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundedCacheGetPut(t *testing.T) {
	c := NewBoundedCache[int](8)

	c.Put("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestBoundedCacheNoEvictionBelowTrigger(t *testing.T) {
	c := NewBoundedCache[int](8)
	for i := 0; i < 8; i++ {
		c.Put(fmt.Sprintf("k%d", i), i)
	}

	assert.Nil(t, c.Evict())
	assert.Equal(t, 8, c.Len())
}

func TestBoundedCacheEvictsOlderHalfOfInactive(t *testing.T) {
	c := NewBoundedCache[int](8)
	for i := 0; i < 12; i++ {
		c.Put(fmt.Sprintf("k%d", i), i)
	}

	c.BeginFrame()
	c.MarkActive("k10")
	c.MarkActive("k11")

	evicted := c.Evict()

	// Неактивных 10, вытесняется старшая половина (5), самые старые первыми
	assert.Len(t, evicted, 5)
	assert.Equal(t, 7, c.Len())
	for i := 0; i < 5; i++ {
		_, ok := c.Get(fmt.Sprintf("k%d", i))
		assert.False(t, ok, "k%d должен быть вытеснен", i)
	}
}

func TestBoundedCacheActiveNeverEvicted(t *testing.T) {
	c := NewBoundedCache[int](4)
	for i := 0; i < 20; i++ {
		c.Put(fmt.Sprintf("k%d", i), i)
	}

	c.BeginFrame()
	for i := 0; i < 20; i++ {
		c.MarkActive(fmt.Sprintf("k%d", i))
	}

	// Все записи активны — вытеснять некого даже при превышении порога
	assert.Nil(t, c.Evict())
	assert.Equal(t, 20, c.Len())
}

func TestBoundedCacheGetRefreshesAge(t *testing.T) {
	c := NewBoundedCache[int](2)
	c.Put("old", 1)
	c.Put("mid", 2)
	c.Put("new", 3)

	// Обращение к old делает его самым свежим
	c.Get("old")

	c.BeginFrame()
	evicted := c.Evict()

	assert.Len(t, evicted, 2)
	_, ok := c.Get("old")
	assert.True(t, ok, "обновлённая запись переживает вытеснение")
}

func TestBoundedCacheDeleteAndClear(t *testing.T) {
	c := NewBoundedCache[string](8)
	c.Put("x", "v")

	v, ok := c.Delete("x")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	_, ok = c.Delete("x")
	assert.False(t, ok)

	c.Put("y", "w")
	c.Clear()
	assert.Equal(t, 0, c.Len())
}
