package database

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/akyairhashvil/pomotrack/internal/testutil"
)

type TestDataBuilder struct {
	t          *testing.T
	ctx        context.Context
	db         *Database
	userIDs    []int64
	taskIDs    []int64
	sessionIDs []string
}

func NewTestDataBuilder(t *testing.T) *TestDataBuilder {
	t.Helper()
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	return &TestDataBuilder{t: t, ctx: ctx, db: db}
}

func (b *TestDataBuilder) userID() int64 {
	b.t.Helper()
	if len(b.userIDs) == 0 {
		b.userIDs = append(b.userIDs, mustDefaultUser(b.t, b.ctx, b.db))
	}
	return b.userIDs[0]
}

func (b *TestDataBuilder) WithUser(name string) *TestDataBuilder {
	b.t.Helper()
	id, err := b.db.CreateUser(b.ctx, name, strings.ToLower(name))
	if err != nil {
		b.t.Fatalf("CreateUser failed: %v", err)
	}
	b.userIDs = append(b.userIDs, id)
	return b
}

func (b *TestDataBuilder) WithTasks(count int) *TestDataBuilder {
	b.t.Helper()
	userID := b.userID()
	for i := 0; i < count; i++ {
		id, err := b.db.AddTask(b.ctx, userID, fmt.Sprintf("Task %d", i+1))
		if err != nil {
			b.t.Fatalf("AddTask failed: %v", err)
		}
		b.taskIDs = append(b.taskIDs, id)
	}
	return b
}

// WithFinishedSessions creates stopped sessions, each with one completed work phase logged.
func (b *TestDataBuilder) WithFinishedSessions(count int) *TestDataBuilder {
	b.t.Helper()
	userID := b.userID()
	now := time.Now()
	for i := 0; i < count; i++ {
		sb := testutil.NewSession("", userID).
			WithPhase(models.PhaseShortBreak, 300).
			WithCounts(1, 0).
			UpdatedAt(now)
		if len(b.taskIDs) > 0 {
			sb.WithTask(b.taskIDs[i%len(b.taskIDs)])
		}
		s := sb.Build()
		if err := b.db.CreateSession(b.ctx, &s); err != nil {
			b.t.Fatalf("CreateSession failed: %v", err)
		}
		if err := b.db.LogPhase(b.ctx, models.PhaseLog{
			SessionID:      s.ID,
			UserID:         userID,
			TaskID:         s.TaskID,
			Phase:          models.PhaseWork,
			PlannedSeconds: 1500,
			ActualSeconds:  1500,
			EndedAt:        now,
		}); err != nil {
			b.t.Fatalf("LogPhase failed: %v", err)
		}
		ended := now
		s.Status = models.StatusStopped
		s.EndedAt = &ended
		if err := b.db.UpdateSession(b.ctx, s); err != nil {
			b.t.Fatalf("UpdateSession failed: %v", err)
		}
		b.sessionIDs = append(b.sessionIDs, s.ID)
	}
	return b
}

func (b *TestDataBuilder) Build() *Database {
	return b.db
}
