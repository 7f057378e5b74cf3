package tui

import (
	"fmt"

	"github.com/akyairhashvil/pomotrack/internal/report"
	tea "github.com/charmbracelet/bubbletea"
)

// handleReport writes today's PDF report into the reports directory.
func handleReport(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	path, err := report.GeneratePDFReport(m.ctx, m.db, m.manager.UserID(), m.now(), m.reportsDir)
	if err != nil {
		m.setStatusError(fmt.Sprintf("Report failed: %v", err))
	} else {
		m.Message = fmt.Sprintf("Report saved: %s", path)
	}
	return m, nil, true
}
