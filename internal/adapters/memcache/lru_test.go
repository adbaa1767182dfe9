package memcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_RoundTripAndIsolation(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)
	ctx := context.Background()

	in := []string{"a", "b"}
	require.NoError(t, c.Set(ctx, "k", in, 0))
	in[0] = "mutated"

	var out []string
	ok, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestCache_Expiry(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, 10))
	var n int
	ok, _ := c.Get(ctx, "k", &n)
	assert.True(t, ok)

	now = now.Add(11 * time.Second)
	ok, _ = c.Get(ctx, "k", &n)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)
	ctx := context.Background()

	_ = c.Set(ctx, "a", 1, 0)
	_ = c.Set(ctx, "b", 2, 0)
	var n int
	_, _ = c.Get(ctx, "a", &n) // a is now most recent
	_ = c.Set(ctx, "c", 3, 0)

	ok, _ := c.Get(ctx, "b", &n)
	assert.False(t, ok, "b should be evicted")
	ok, _ = c.Get(ctx, "a", &n)
	assert.True(t, ok)

	require.NoError(t, c.Del(ctx, "a"))
	ok, _ = c.Get(ctx, "a", &n)
	assert.False(t, ok)
}
