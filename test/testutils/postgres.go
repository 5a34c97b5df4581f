//go:build integration

package testutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantryplan/api/internal/infrastructure/config"
	"github.com/pantryplan/api/internal/infrastructure/persistence/postgres"
)

// PostgresConfig holds test database configuration
type PostgresConfig struct {
	Image    string
	Database string
	Username string
	Password string
}

// DefaultPostgresConfig returns the default test database configuration
func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Image:    "postgres:15-alpine",
		Database: "pantryplan_test",
		Username: "test_user",
		Password: "test_password",
	}
}

// SetupPostgresDatabase starts a PostgreSQL container and opens it through
// the production opener, so the versioned migrations run against it
func SetupPostgresDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := DefaultPostgresConfig()
	dsn, host := StartPostgres(t, cfg)

	db, err := postgres.Open(config.DatabaseConfig{
		Driver:   "postgres",
		Host:     host,
		Database: cfg.Database,
	}, dsn, logger.Discard, zap.NewNop())
	require.NoError(t, err, "Failed to open test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// StartPostgres starts an empty PostgreSQL container and returns its DSN and host
func StartPostgres(t *testing.T, cfg PostgresConfig) (string, string) {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        cfg.Image,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       cfg.Database,
				"POSTGRES_USER":     cfg.Username,
				"POSTGRES_PASSWORD": cfg.Password,
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
				wait.ForListeningPort("5432/tcp"),
			),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start postgres container")

	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Username, cfg.Password, host, port.Port(), cfg.Database)
	return dsn, host
}
