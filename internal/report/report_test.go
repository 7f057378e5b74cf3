package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/database"
	"github.com/akyairhashvil/pomotrack/internal/models"
)

func setupReportDB(t *testing.T) (*database.Database, context.Context, int64) {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "report.db"), "")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})
	userID, err := db.EnsureDefaultUser(ctx)
	if err != nil {
		t.Fatalf("EnsureDefaultUser failed: %v", err)
	}
	return db, ctx, userID
}

func seedReportData(t *testing.T, db *database.Database, ctx context.Context, userID int64, now time.Time) int64 {
	t.Helper()
	taskID, err := db.AddTask(ctx, userID, "Write the café report")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if _, err := db.AddTask(ctx, userID, "Untouched"); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	s := &models.Session{UserID: userID, TaskID: &taskID, Phase: models.PhaseWork, Status: models.StatusRunning, RemainingSeconds: 1500}
	if err := db.CreateSession(ctx, s); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	logs := []models.PhaseLog{
		{SessionID: s.ID, UserID: userID, TaskID: &taskID, Phase: models.PhaseWork, PlannedSeconds: 1500, ActualSeconds: 1500, EndedAt: now},
		{SessionID: s.ID, UserID: userID, Phase: models.PhaseShortBreak, PlannedSeconds: 300, ActualSeconds: 120, Skipped: true, EndedAt: now},
	}
	for _, l := range logs {
		if err := db.LogPhase(ctx, l); err != nil {
			t.Fatalf("LogPhase failed: %v", err)
		}
	}
	return taskID
}

func TestBuildDaily(t *testing.T) {
	db, ctx, userID := setupReportDB(t)
	now := time.Now()
	taskID := seedReportData(t, db, ctx, userID, now)

	r, err := BuildDaily(ctx, db, userID, now)
	if err != nil {
		t.Fatalf("BuildDaily failed: %v", err)
	}
	if len(r.Logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(r.Logs))
	}
	if r.Stats.CompletedWork != 1 || r.Stats.Skipped != 1 || r.Stats.FocusSeconds != 1500 {
		t.Fatalf("unexpected stats: %+v", r.Stats)
	}
	if len(r.Tasks) != 1 || r.Tasks[0].ID != taskID {
		t.Fatalf("expected only the worked task, got %+v", r.Tasks)
	}
}

func TestGeneratePDFReport(t *testing.T) {
	db, ctx, userID := setupReportDB(t)
	now := time.Now()
	seedReportData(t, db, ctx, userID, now)

	dir := filepath.Join(t.TempDir(), "reports")
	path, err := GeneratePDFReport(ctx, db, userID, now, dir)
	if err != nil {
		t.Fatalf("GeneratePDFReport failed: %v", err)
	}
	if !strings.HasSuffix(path, "report_"+now.Format("2006-01-02")+".pdf") {
		t.Fatalf("unexpected report path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected PDF header")
	}
}

func TestGeneratePDFReport_EmptyDay(t *testing.T) {
	db, ctx, userID := setupReportDB(t)
	path, err := GeneratePDFReport(ctx, db, userID, time.Now().AddDate(0, 0, -3), t.TempDir())
	if err != nil {
		t.Fatalf("GeneratePDFReport failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty report, got %v", err)
	}
}

func TestFormatFocus(t *testing.T) {
	cases := map[int]string{
		0:    "0m",
		59:   "0m",
		1500: "25m",
		3900: "1h 05m",
	}
	for in, want := range cases {
		if got := FormatFocus(in); got != want {
			t.Fatalf("FormatFocus(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteExport(t *testing.T) {
	db, ctx, userID := setupReportDB(t)
	seedReportData(t, db, ctx, userID, time.Now())
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)

	dir := t.TempDir()
	path, err := WriteExport(ctx, db, dir, "", now)
	if err != nil {
		t.Fatalf("WriteExport failed: %v", err)
	}
	if filepath.Base(path) != "pomotrack_export_20260102_030405.json" {
		t.Fatalf("unexpected export name %q", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var export database.VaultExport
	if err := json.Unmarshal(raw, &export); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if len(export.Tasks) != 2 || len(export.PhaseLogs) != 2 {
		t.Fatalf("unexpected export contents: %d tasks, %d logs", len(export.Tasks), len(export.PhaseLogs))
	}

	encPath, err := WriteExport(ctx, db, dir, "Secret123", now.Add(time.Second))
	if err != nil {
		t.Fatalf("WriteExport encrypted failed: %v", err)
	}
	encRaw, err := os.ReadFile(encPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Contains(encRaw, []byte(`"encrypted":true`)) {
		t.Fatalf("expected encrypted envelope")
	}
}
