// Package report renders daily PDF reports and writes vault exports to disk.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/database"
	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/go-pdf/fpdf"
)

// Source is the read access a report needs.
type Source interface {
	GetPhaseLogs(ctx context.Context, userID int64, from, to time.Time) ([]models.PhaseLog, error)
	GetTasks(ctx context.Context, userID int64, includeDone bool) ([]models.Task, error)
}

// Daily is the data behind one day's report.
type Daily struct {
	Day   time.Time
	Logs  []models.PhaseLog
	Stats models.Stats
	// Tasks worked on or finished that day.
	Tasks []models.Task
}

func BuildDaily(ctx context.Context, src Source, userID int64, day time.Time) (Daily, error) {
	from, to := database.DayBounds(day)
	logs, err := src.GetPhaseLogs(ctx, userID, from, to)
	if err != nil {
		return Daily{}, err
	}
	tasks, err := src.GetTasks(ctx, userID, true)
	if err != nil {
		return Daily{}, err
	}

	touched := make(map[int64]bool)
	for _, l := range logs {
		if l.TaskID != nil {
			touched[*l.TaskID] = true
		}
	}
	r := Daily{Day: from, Logs: logs, Stats: database.SummarizeLogs(logs)}
	for _, t := range tasks {
		finishedToday := t.CompletedAt != nil && !t.CompletedAt.Before(from) && t.CompletedAt.Before(to)
		if touched[t.ID] || finishedToday {
			r.Tasks = append(r.Tasks, t)
		}
	}
	return r, nil
}

// FormatFocus renders seconds as "1h 05m" or "25m".
func FormatFocus(seconds int) string {
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// WritePDF renders r to path.
func WritePDF(r Daily, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Pomodoro Report: %s", r.Day.Format("2006-01-02")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	summary := []string{
		fmt.Sprintf("Focus sessions completed: %d", r.Stats.CompletedWork),
		fmt.Sprintf("Breaks taken: %d", r.Stats.CompletedBreaks),
		fmt.Sprintf("Focus time: %s", FormatFocus(r.Stats.FocusSeconds)),
		fmt.Sprintf("Skipped: %d  Interrupted: %d", r.Stats.Skipped, r.Stats.Interrupted),
	}
	for _, line := range summary {
		pdf.Cell(0, 8, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Phases")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	if len(r.Logs) == 0 {
		pdf.Cell(0, 8, "  - No phases recorded.")
		pdf.Ln(8)
	}
	for _, l := range r.Logs {
		mark := "[x]"
		switch {
		case l.Interrupted:
			mark = "[-]"
		case l.Skipped:
			mark = "[>]"
		}
		line := fmt.Sprintf("%s  %s  %-12s %s / %s", l.EndedAt.Local().Format("15:04"), mark, l.Phase.Label(),
			FormatFocus(l.ActualSeconds), FormatFocus(l.PlannedSeconds))
		pdf.Cell(0, 8, line)
		pdf.Ln(6)
	}

	if len(r.Tasks) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, "Tasks")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 12)
		for _, t := range r.Tasks {
			status := "[ ]"
			if t.Status == models.TaskDone {
				status = "[x]"
			}
			pdf.MultiCell(0, 8, tr(fmt.Sprintf("%s %s (%d pomodoros)", status, t.Title, t.Pomodoros)), "", "", false)
		}
	}
	return pdf.OutputFileAndClose(path)
}

// GeneratePDFReport writes the report for day into dir and returns the file path.
func GeneratePDFReport(ctx context.Context, src Source, userID int64, day time.Time, dir string) (string, error) {
	r, err := BuildDaily(ctx, src, userID, day)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("report_%s.pdf", r.Day.Format("2006-01-02")))
	if err := WritePDF(r, filename); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	if abs, err := filepath.Abs(filename); err == nil {
		filename = abs
	}
	return filename, nil
}
