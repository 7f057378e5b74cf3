package config

// Layout constants.
const (
	// MinProgressWidth is the narrowest progress bar rendered.
	MinProgressWidth = 10

	// TargetProgressWidth is the preferred progress bar width.
	TargetProgressWidth = 40

	// CompactModeThreshold triggers compact rendering below this width.
	CompactModeThreshold = 60

	// MaxTaskTitleWidth truncates linked task titles in the header.
	MaxTaskTitleWidth = 48
)

// Display limits.
const (
	// MaxVisibleTasks limits tasks shown in the task list.
	MaxVisibleTasks = 8

	// MaxVisibleLogs limits today's phase log lines.
	MaxVisibleLogs = 6

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "…"
)

// Input constraints.
const (
	// MaxTaskTitleLength is the maximum task title length.
	MaxTaskTitleLength = 100
)
