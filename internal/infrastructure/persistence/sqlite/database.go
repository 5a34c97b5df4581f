// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantryplan/api/internal/infrastructure/config"
	gormrepo "github.com/pantryplan/api/internal/infrastructure/persistence/gorm"
)

const memoryPath = ":memory:"

// Open opens the SQLite database at cfg.Path and migrates the schema.
// An empty path opens a private in-memory database.
func Open(cfg config.DatabaseConfig, gormLogger logger.Interface, log *zap.Logger) (*gorm.DB, error) {
	path := cfg.Path
	if path == "" {
		path = memoryPath
	}

	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger:                                   gormLogger,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// every new connection to :memory: is a new empty database
	if path == memoryPath {
		sqlDB.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := gormrepo.AutoMigrate(db); err != nil {
		return nil, err
	}

	log.Info("SQLite database ready", zap.String("path", path))

	return db, nil
}

// dsn adds a busy timeout and WAL journaling to file databases
func dsn(path string) string {
	if path == memoryPath || strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000&_journal_mode=WAL"
}
