package database

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/akyairhashvil/pomotrack/internal/testutil"
)

func TestMigrateIdempotent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	if err := db.migrate(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := db.migrate(ctx); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
}

func TestWithTxRollback(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO users (name, slug) VALUES (?, ?)", "Tx", "tx-rollback"); err != nil {
			return err
		}
		return fmt.Errorf("force rollback")
	})
	if err == nil {
		t.Fatalf("expected error from WithTx")
	}

	var count int
	if err := db.DB.QueryRowContext(ctx, "SELECT COUNT(1) FROM users WHERE slug = ?", "tx-rollback").Scan(&count); err != nil {
		t.Fatalf("query count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to remove user, got count %d", count)
	}
}

// A failed insert must not leave the user's live session stopped.
func TestCreateSessionRollsBackStopOnInsertFailure(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	userID := mustDefaultUser(t, ctx, db)

	first := testutil.NewSession("first", userID).Build()
	if err := db.CreateSession(ctx, &first); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	live := testutil.NewSession("live", userID).Build()
	if err := db.CreateSession(ctx, &live); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	dup := testutil.NewSession("first", userID).Build()
	if err := db.CreateSession(ctx, &dup); err == nil {
		t.Fatalf("expected duplicate id to fail")
	}

	active, err := db.GetActiveSession(ctx, userID)
	if err != nil {
		t.Fatalf("GetActiveSession failed: %v", err)
	}
	if active == nil || active.ID != "live" {
		t.Fatalf("expected live session to survive the rollback, got %+v", active)
	}
}
