package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryplan/api/internal/ports/outbound"
)

func newTestCache(t *testing.T) (*CacheRepository, *time.Time) {
	t.Helper()
	cache := NewCacheRepository(time.Hour)
	t.Cleanup(func() { _ = cache.Close() })

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	return cache, &now
}

func TestCacheRepository_SetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	value := []byte(`{"title":"Soup"}`)
	require.NoError(t, cache.Set(ctx, "recipe:1", value, time.Minute))

	// mutating the caller's slice must not change the stored value
	value[0] = 'X'

	got, err := cache.Get(ctx, "recipe:1")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Soup"}`, string(got))

	exists, err := cache.Exists(ctx, "recipe:1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCacheRepository_Miss(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)
}

func TestCacheRepository_Expiry(t *testing.T) {
	cache, now := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))

	*now = now.Add(2 * time.Minute)

	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)

	exists, err := cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Equal(t, 1, cache.Len())
	cache.removeExpired()
	assert.Equal(t, 0, cache.Len())
}

func TestCacheRepository_ZeroTTLUsesDefault(t *testing.T) {
	cache, now := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 0))
	*now = now.Add(23 * time.Hour)

	_, err := cache.Get(ctx, "k")
	assert.NoError(t, err)
}

func TestCacheRepository_Delete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "k"))

	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)

	assert.NoError(t, cache.Delete(ctx, "never-set"))
}

func TestCacheRepository_CloseIsIdempotent(t *testing.T) {
	cache := NewCacheRepository(time.Millisecond)
	assert.NoError(t, cache.Close())
	assert.NoError(t, cache.Close())
}
