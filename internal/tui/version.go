package tui

import "fmt"

// Set with -ldflags "-X .../internal/tui.GitCommit=... -X .../internal/tui.BuildTime=...".
var (
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// VersionLabel is AppVersion plus build metadata when it was stamped in.
func VersionLabel() string {
	label := AppVersion
	if GitCommit != "unknown" || BuildTime != "unknown" {
		label = fmt.Sprintf("%s (%s %s)", AppVersion, GitCommit, BuildTime)
	}
	return label
}
