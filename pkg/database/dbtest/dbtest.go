// Package dbtest opens disposable databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tair/parts-replenishment/pkg/database"
)

// Open returns a fresh in-memory SQLite database that is closed when the test ends
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.NewGormConnection(database.Config{
		Driver: database.DriverSQLite,
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
