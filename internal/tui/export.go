package tui

import (
	"fmt"

	"github.com/akyairhashvil/pomotrack/internal/report"
	tea "github.com/charmbracelet/bubbletea"
)

// handleExport writes an unencrypted vault export. Encrypted exports go
// through the export command, which can prompt for a passphrase.
func handleExport(m MainModel, _ string) (MainModel, tea.Cmd, bool) {
	path, err := report.WriteExport(m.ctx, m.db, m.exportDir, "", m.now())
	if err != nil {
		m.setStatusError(fmt.Sprintf("Export failed: %v", err))
	} else {
		m.Message = fmt.Sprintf("Export saved: %s", path)
	}
	return m, nil, true
}
