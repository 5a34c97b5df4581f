package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantryplan/api/internal/infrastructure/config"
	"github.com/pantryplan/api/internal/infrastructure/persistence/sqlite"
)

// SetupSQLiteDatabase opens a migrated in-memory SQLite database that is
// closed when the test ends
func SetupSQLiteDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.Open(config.DatabaseConfig{Driver: "sqlite"}, logger.Discard, zap.NewNop())
	require.NoError(t, err, "Failed to open test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// TruncateAllTables empties every application table
func TruncateAllTables(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, table := range []string{"meal_plans", "shopping_lists", "goals", "pantry_items", "recipes"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error, "Failed to truncate %s", table)
	}
}
