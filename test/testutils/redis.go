//go:build integration

package testutils

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/infrastructure/config"
	redisrepo "github.com/pantryplan/api/internal/infrastructure/persistence/redis"
)

// SetupRedis starts a Redis container and connects the production client to it
func SetupRedis(t *testing.T) goredis.UniversalClient {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start redis container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client, err := redisrepo.NewClient(config.RedisConfig{
		Host:        host,
		Port:        port.Int(),
		DialTimeout: 5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err, "Failed to connect to redis")
	t.Cleanup(func() { _ = client.Close() })

	return client
}
