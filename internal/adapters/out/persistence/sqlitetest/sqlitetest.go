// Package sqlitetest opens throwaway in-memory SQLite databases with the full
// schema, for tests that need real SQL semantics without a container.
package sqlitetest

import (
	"fmt"
	"testing"

	"github.com/smaikl/GLG-bot/internal/adapters/out/persistence"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns a migrated database private to t. It is closed on cleanup.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := persistence.Open(persistence.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, persistence.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
