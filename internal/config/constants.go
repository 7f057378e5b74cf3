package config

import "time"

// Timer defaults.
const (
	DefaultWorkMinutes            = 25
	DefaultShortBreakMinutes      = 5
	DefaultLongBreakMinutes       = 15
	DefaultSessionsUntilLongBreak = 4

	MinPhaseMinutes           = 1
	MaxPhaseMinutes           = 180
	MaxSessionsUntilLongBreak = 12
)

// Tick source.
const (
	TickInterval = time.Second
	// CheckpointEvery is the number of ticks between persisted snapshots of a running phase.
	CheckpointEvery = 30
	AutoLockAfter   = 10 * time.Minute
)

// Database/application settings.
const (
	AppName               = "pomotrack"
	DBFileName            = "pomotrack.db"
	LogFileName           = "pomotrack.log"
	ConfigFileName        = "config.yaml"
	EnvPrefix             = "POMOTRACK"
	DefaultUserSlug       = "personal"
	MaxPassphraseAttempts = 5
)

// Lock screen.
const (
	// PassphraseLockout is how long the lock screen refuses input after MaxPassphraseAttempts failures.
	PassphraseLockout    = 30 * time.Second
	PassphraseSettingKey = "passphrase_hash"
)
