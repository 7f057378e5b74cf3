package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// TimerDefaults seeds the settings of profiles that have never saved their own.
type TimerDefaults struct {
	WorkMinutes            int  `mapstructure:"work_minutes" yaml:"work_minutes"`
	ShortBreakMinutes      int  `mapstructure:"short_break_minutes" yaml:"short_break_minutes"`
	LongBreakMinutes       int  `mapstructure:"long_break_minutes" yaml:"long_break_minutes"`
	SessionsUntilLongBreak int  `mapstructure:"sessions_until_long_break" yaml:"sessions_until_long_break"`
	SoundEnabled           bool `mapstructure:"sound_enabled" yaml:"sound_enabled"`
	NotificationsEnabled   bool `mapstructure:"notifications_enabled" yaml:"notifications_enabled"`
	AutoStartBreaks        bool `mapstructure:"auto_start_breaks" yaml:"auto_start_breaks"`
	AutoStartWork          bool `mapstructure:"auto_start_work" yaml:"auto_start_work"`
}

// File is the on-disk configuration. Every key can be overridden with a
// POMOTRACK_ prefixed environment variable (nested keys joined by "_").
type File struct {
	DataDir      string        `mapstructure:"data_dir" yaml:"data_dir"`
	Profile      string        `mapstructure:"profile" yaml:"profile"`
	Theme        string        `mapstructure:"theme" yaml:"theme"`
	TickInterval time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`
	Defaults     TimerDefaults `mapstructure:"defaults" yaml:"defaults"`
}

// DefaultFile returns the configuration used when no file exists.
func DefaultFile() File {
	return File{
		Profile:      DefaultUserSlug,
		Theme:        "default",
		TickInterval: TickInterval,
		Defaults: TimerDefaults{
			WorkMinutes:            DefaultWorkMinutes,
			ShortBreakMinutes:      DefaultShortBreakMinutes,
			LongBreakMinutes:       DefaultLongBreakMinutes,
			SessionsUntilLongBreak: DefaultSessionsUntilLongBreak,
			SoundEnabled:           true,
			NotificationsEnabled:   true,
		},
	}
}

func setDefaults(v *viper.Viper) {
	def := DefaultFile()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("profile", def.Profile)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("tick_interval", def.TickInterval)
	v.SetDefault("defaults.work_minutes", def.Defaults.WorkMinutes)
	v.SetDefault("defaults.short_break_minutes", def.Defaults.ShortBreakMinutes)
	v.SetDefault("defaults.long_break_minutes", def.Defaults.LongBreakMinutes)
	v.SetDefault("defaults.sessions_until_long_break", def.Defaults.SessionsUntilLongBreak)
	v.SetDefault("defaults.sound_enabled", def.Defaults.SoundEnabled)
	v.SetDefault("defaults.notifications_enabled", def.Defaults.NotificationsEnabled)
	v.SetDefault("defaults.auto_start_breaks", def.Defaults.AutoStartBreaks)
	v.SetDefault("defaults.auto_start_work", def.Defaults.AutoStartWork)
}

// Load reads path (if it exists) and applies environment overrides.
// A missing file is not an error.
func Load(path string) (File, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return File{}, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return File{}, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	var cfg File
	if err := v.Unmarshal(&cfg); err != nil {
		return File{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = TickInterval
	}
	return cfg, nil
}

// WriteDefault writes the default configuration to path. It refuses to
// overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s already exists", path)
		}
	}
	data, err := yaml.Marshal(DefaultFile())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
