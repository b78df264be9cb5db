package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestMemoryCache_MissReturnsNotFound(t *testing.T) {
	c := NewMemoryCache()

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCache_ExpiryByTTL(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	current := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	require.NoError(t, c.Set(ctx, "k", "v", 10*time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	current = current.Add(11 * time.Minute)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCache_Del(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, c.Del(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCache_OverwriteRefreshesTTL(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	current := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	require.NoError(t, c.Set(ctx, "k", "old", 5*time.Minute))
	current = current.Add(4 * time.Minute)
	require.NoError(t, c.Set(ctx, "k", "new", 5*time.Minute))
	current = current.Add(4 * time.Minute)

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}
