// Package rowstoretest provides a throwaway local row store for tests.
package rowstoretest

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"focolog/core/rowstore"
)

// NewLocalStore opens a local store on a temp-file sqlite database.
func NewLocalStore(t testing.TB) *rowstore.LocalStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "rows.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	s, err := rowstore.NewLocalStore(db)
	if err != nil {
		t.Fatalf("local store: %v", err)
	}
	return s
}
