package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/andrescamacho/dbmigrate/internal/domain/connection"
	"github.com/andrescamacho/dbmigrate/internal/infrastructure/database"
)

// NewTestDB opens a connection for desc and closes it when the test ends.
// A nil descriptor opens an in-memory SQLite database.
func NewTestDB(t *testing.T, desc *connection.Descriptor) *gorm.DB {
	t.Helper()
	if desc == nil {
		desc = connection.NewSQLiteDescriptor("")
	}

	db, err := database.NewConnection(desc, nil)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Cleanup after test
	t.Cleanup(func() {
		database.Close(db)
	})

	return db
}
