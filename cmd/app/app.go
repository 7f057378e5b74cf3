package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/akyairhashvil/pomotrack/internal/config"
	"github.com/akyairhashvil/pomotrack/internal/database"
	"github.com/akyairhashvil/pomotrack/internal/models"
	"github.com/akyairhashvil/pomotrack/internal/pomodoro"
	"github.com/akyairhashvil/pomotrack/internal/util"
	"github.com/joho/godotenv"
)

// options are the persistent root flags shared by every command.
type options struct {
	configPath string
	dataDir    string
	profile    string
}

// app is an opened database plus the resolved config and profile.
type app struct {
	cfg     config.File
	dataDir string
	db      *database.Database
	userID  int64
}

func defaultConfigPath() string {
	return filepath.Join(util.ConfigDir(config.AppName), config.ConfigFileName)
}

func (o *options) resolvedConfigPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	return defaultConfigPath()
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}
}

func openApp(ctx context.Context, opts *options) (*app, error) {
	loadDotEnv()
	cfg, err := config.Load(opts.resolvedConfigPath())
	if err != nil {
		return nil, err
	}

	dataDir := opts.dataDir
	if dataDir == "" {
		dataDir = cfg.DataDir
	}
	if dataDir == "" {
		dataDir = util.DataDir(config.AppName)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	dbPath := filepath.Join(dataDir, config.DBFileName)
	cleanupStaleDBArtifacts(dbPath)

	key := strings.TrimSpace(os.Getenv(config.EnvPrefix + "_DB_KEY"))
	db, err := openDatabase(ctx, dbPath, key)
	if err != nil {
		return nil, err
	}
	if err := db.SetDefaultSettings(defaultsToSettings(cfg.Defaults)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	profile := opts.profile
	if profile == "" {
		profile = cfg.Profile
	}
	userID, err := resolveProfile(ctx, db, profile)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &app{cfg: cfg, dataDir: dataDir, db: db, userID: userID}, nil
}

// openDatabase opens dbPath, offering to set a passphrase on first run and
// prompting for it when an existing file is encrypted.
func openDatabase(ctx context.Context, dbPath, key string) (*database.Database, error) {
	_, statErr := os.Stat(dbPath)
	dbExists := statErr == nil
	interactive := stdinIsTerminal()

	if !dbExists && key == "" && interactive && database.SQLCipherCompiled() {
		for {
			pass, err := promptForKey("Set DB passphrase (leave empty to skip): ")
			if err != nil {
				return nil, err
			}
			if pass == "" {
				break
			}
			if err := util.ValidatePassphrase(pass); err != nil {
				fmt.Fprintf(os.Stderr, "Passphrase too weak: %v\n", err)
				continue
			}
			key = pass
			break
		}
	}

	if dbExists && key == "" {
		if enc, err := database.IsEncryptedFile(dbPath); err == nil && enc {
			if !interactive {
				return nil, fmt.Errorf("%w: set %s_DB_KEY", database.ErrDatabaseEncrypted, config.EnvPrefix)
			}
			return promptAndOpen(ctx, dbPath)
		}
	}

	db, err := database.Open(ctx, dbPath, key)
	if err != nil {
		if errors.Is(err, database.ErrSQLCipherUnavailable) {
			return nil, fmt.Errorf("%w: rebuild with SQLCipher to use an encrypted database", err)
		}
		return nil, err
	}

	if !dbExists && key != "" {
		hash, herr := util.HashPassphrase(key)
		if herr == nil {
			herr = db.SetSetting(ctx, config.PassphraseSettingKey, hash)
		}
		util.LogError("store passphrase hash", herr)
	}
	return db, nil
}

// promptAndOpen asks for the key of an encrypted database until it opens or
// MaxPassphraseAttempts wrong answers were given.
func promptAndOpen(ctx context.Context, dbPath string) (*database.Database, error) {
	var err error
	for tries := 0; tries < config.MaxPassphraseAttempts; tries++ {
		pass, perr := promptForKey("Enter DB passphrase: ")
		if perr != nil {
			return nil, perr
		}
		if pass == "" {
			return nil, errors.New("empty passphrase")
		}
		var db *database.Database
		db, err = database.Open(ctx, dbPath, pass)
		if err == nil {
			return db, nil
		}
		if !errors.Is(err, database.ErrWrongPassphrase) {
			break
		}
		fmt.Fprintln(os.Stderr, "Incorrect passphrase.")
	}
	if errors.Is(err, database.ErrSQLCipherUnavailable) {
		return nil, fmt.Errorf("%w: rebuild with SQLCipher to open this database", err)
	}
	return nil, err
}

// resolveProfile maps a profile slug to its user id. The default profile is
// created on demand; any other slug must already exist.
func resolveProfile(ctx context.Context, db *database.Database, profile string) (int64, error) {
	defaultID, err := db.EnsureDefaultUser(ctx)
	if err != nil {
		return 0, err
	}
	slug := util.Slugify(profile)
	if slug == "" || slug == config.DefaultUserSlug {
		return defaultID, nil
	}
	id, ok, err := db.GetUserIDBySlug(ctx, slug)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("unknown profile %q (create it with: %s profile add <name>)", profile, config.AppName)
	}
	return id, nil
}

func defaultsToSettings(d config.TimerDefaults) models.Settings {
	return models.Settings{
		WorkMinutes:            d.WorkMinutes,
		ShortBreakMinutes:      d.ShortBreakMinutes,
		LongBreakMinutes:       d.LongBreakMinutes,
		SessionsUntilLongBreak: d.SessionsUntilLongBreak,
		SoundEnabled:           d.SoundEnabled,
		NotificationsEnabled:   d.NotificationsEnabled,
		AutoStartBreaks:        d.AutoStartBreaks,
		AutoStartWork:          d.AutoStartWork,
	}
}

// manager returns a Manager for the app's profile, restored from the database.
func (a *app) manager(ctx context.Context, opts ...pomodoro.Option) (*pomodoro.Manager, error) {
	mgr := pomodoro.NewManager(a.db, a.userID, opts...)
	if err := mgr.Load(ctx); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	return mgr, nil
}

func (a *app) Close() {
	util.LogError("close database", a.db.Close())
}
