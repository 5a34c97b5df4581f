//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/infrastructure/cache"
	"github.com/pantryplan/api/internal/infrastructure/monitoring"
	redisrepo "github.com/pantryplan/api/internal/infrastructure/persistence/redis"
	"github.com/pantryplan/api/internal/ports/outbound"
	"github.com/pantryplan/api/pkg/healthcheck"
	"github.com/pantryplan/api/test/testutils"
)

func TestRedisCacheRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping container tests in short mode")
	}
	client := testutils.SetupRedis(t)
	ctx := context.Background()

	metrics := monitoring.NewMetricsCollector(zap.NewNop())
	repo := cache.NewInstrumented(redisrepo.NewCacheRepository(client, "pantryplan-test:", zap.NewNop()), "redis", metrics)

	_, err := repo.Get(ctx, "recipe:1")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)

	require.NoError(t, repo.Set(ctx, "recipe:1", []byte(`{"title":"Soup"}`), time.Minute))

	got, err := repo.Get(ctx, "recipe:1")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Soup"}`, string(got))

	// keys live under the prefix
	raw, err := client.Get(ctx, "pantryplan-test:recipe:1").Result()
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Soup"}`, raw)

	ttl, err := client.TTL(ctx, "pantryplan-test:recipe:1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, repo.Delete(ctx, "recipe:1"))
	exists, err := repo.Exists(ctx, "recipe:1")
	require.NoError(t, err)
	assert.False(t, exists)

	check := healthcheck.NewRedisChecker(client).Check(ctx)
	assert.Equal(t, healthcheck.StatusHealthy, check.Status)
}
