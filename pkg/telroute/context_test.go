package telroute

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestContext_SetGet covers basic storage round-trips.
func TestContext_SetGet(t *testing.T) {
	c := NewContext()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("answer", 42)
	v, ok := c.Get("answer")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	c.Set("answer", "forty-two")
	v, ok = c.Get("answer")
	assert.True(t, ok)
	assert.Equal(t, "forty-two", v)
}

// TestContext_Delete verifies deletion and deleting absent keys.
func TestContext_Delete(t *testing.T) {
	c := NewContext()
	c.Set("k", 1)
	c.Delete("k")
	_, ok := c.Get("k")
	assert.False(t, ok)

	// Absent key is a no-op.
	c.Delete("never-set")
	assert.Equal(t, 0, c.Len())
}

// TestContext_Keys verifies key snapshots.
func TestContext_Keys(t *testing.T) {
	c := NewContext()
	c.Set("a", 1)
	c.Set("b", 2)
	assert.ElementsMatch(t, []string{"a", "b"}, c.Keys())
	assert.Equal(t, 2, c.Len())
}

// TestTypedValue verifies typed access never panics.
func TestTypedValue(t *testing.T) {
	c := NewContext()
	c.Set("n", 7)
	c.Set("s", "hello")
	c.Set("u", &User{ID: 1})

	n, ok := TypedValue[int](c, "n")
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	// Type mismatch yields zero value, not a panic.
	s, ok := TypedValue[string](c, "n")
	assert.False(t, ok)
	assert.Empty(t, s)

	// Missing key yields zero value.
	u, ok := TypedValue[*User](c, "missing")
	assert.False(t, ok)
	assert.Nil(t, u)

	u, ok = TypedValue[*User](c, "u")
	assert.True(t, ok)
	assert.Equal(t, int64(1), u.ID)
}

// TestContext_ConcurrentAccess exercises the lock under parallel writers
// and readers.
func TestContext_ConcurrentAccess(t *testing.T) {
	c := NewContext()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set("shared", n)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Get("shared")
				c.Len()
			}
		}()
	}
	wg.Wait()

	_, ok := c.Get("shared")
	assert.True(t, ok)
}
