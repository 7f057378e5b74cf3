package database

import (
	"context"
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T, ctx context.Context) *Database {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	db, err := Open(ctx, dbPath, "")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})
	return db
}

func mustDefaultUser(t *testing.T, ctx context.Context, db *Database) int64 {
	t.Helper()
	userID, err := db.EnsureDefaultUser(ctx)
	if err != nil {
		t.Fatalf("EnsureDefaultUser failed: %v", err)
	}
	return userID
}
