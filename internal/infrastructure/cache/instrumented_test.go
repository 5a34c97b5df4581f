package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryplan/api/internal/infrastructure/persistence/memory"
	"github.com/pantryplan/api/internal/ports/outbound"
)

type opRecorder struct {
	ops []string
}

func (r *opRecorder) CacheOperation(operation, cacheType, status string) {
	r.ops = append(r.ops, fmt.Sprintf("%s:%s:%s", cacheType, operation, status))
}

func TestInstrumented_ReportsOperations(t *testing.T) {
	backend := memory.NewCacheRepository(time.Hour)
	t.Cleanup(func() { _ = backend.Close() })

	rec := &opRecorder{}
	c := NewInstrumented(backend, "memory", rec)
	ctx := context.Background()

	_, err := c.Get(ctx, "recipe:1")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "recipe:1", []byte("x"), time.Minute))

	got, err := c.Get(ctx, "recipe:1")
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))

	ok, err := c.Exists(ctx, "recipe:1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Delete(ctx, "recipe:1"))

	assert.Equal(t, []string{
		"memory:get:miss",
		"memory:set:ok",
		"memory:get:hit",
		"memory:exists:ok",
		"memory:delete:ok",
	}, rec.ops)
}
