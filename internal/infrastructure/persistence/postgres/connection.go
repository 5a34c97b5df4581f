// Package postgres provides PostgreSQL database connection and management
package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantryplan/api/internal/infrastructure/config"
	gormrepo "github.com/pantryplan/api/internal/infrastructure/persistence/gorm"
	"github.com/pantryplan/api/internal/infrastructure/persistence/migrations"
)

// ConnectionConfig holds connection pool configuration
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// DefaultConnectionConfig returns the default pool settings
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		PingTimeout:     10 * time.Second,
	}
}

// connectionConfigFrom overrides the defaults with any configured values
func connectionConfigFrom(cfg config.DatabaseConfig) ConnectionConfig {
	cc := DefaultConnectionConfig()
	if cfg.MaxOpenConns > 0 {
		cc.MaxOpenConns = cfg.MaxOpenConns
	}
	if cfg.MaxIdleConns > 0 {
		cc.MaxIdleConns = cfg.MaxIdleConns
	}
	if cfg.ConnMaxLifetime > 0 {
		cc.ConnMaxLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		cc.ConnMaxIdleTime = cfg.ConnMaxIdleTime
	}
	return cc
}

// Open connects to PostgreSQL, applies pending migrations and configures the
// pool. With cfg.AutoMigrate set, the schema comes from the GORM models
// instead of the versioned SQL files.
func Open(cfg config.DatabaseConfig, dsn string, gormLogger logger.Interface, log *zap.Logger) (*gorm.DB, error) {
	if !cfg.AutoMigrate {
		if err := migrate(dsn, cfg.Database, log); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   gormLogger,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	cc := connectionConfigFrom(cfg)
	sqlDB.SetMaxOpenConns(cc.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cc.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cc.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cc.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), cc.PingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := gormrepo.AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	log.Info("PostgreSQL connection established",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database),
		zap.Int("max_open_conns", cc.MaxOpenConns),
		zap.Int("max_idle_conns", cc.MaxIdleConns),
		zap.Duration("conn_max_lifetime", cc.ConnMaxLifetime),
	)

	return db, nil
}

func migrate(dsn, database string, log *zap.Logger) error {
	m, err := migrations.New(dsn, database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()

	return m.Up()
}
