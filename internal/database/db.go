package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

const defaultDBTimeout = 5 * time.Second

// Database wraps the SQLite connection used for sessions, settings and tasks.
type Database struct {
	DB       *sql.DB
	dbFile   string
	keyed    bool
	defaults *models.Settings
}

// Open opens (creating if needed) the database at path and applies migrations.
// A non-empty key is applied with PRAGMA key and requires a SQLCipher build.
func Open(ctx context.Context, path string, key string) (*Database, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	// A single connection keeps PRAGMA key applied to every statement.
	db.SetMaxOpenConns(1)

	d := &Database{DB: db, dbFile: path, keyed: key != ""}
	if key != "" {
		ok, err := d.detectSQLCipher(ctx)
		if err != nil || !ok {
			_ = db.Close()
			return nil, ErrSQLCipherUnavailable
		}
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA key = %s", quoteLiteral(key))); err != nil {
			_ = db.Close()
			return nil, classifyOpenErr(err, true)
		}
	}

	pingCtx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, classifyOpenErr(err, d.keyed)
	}
	// Reading the schema is the first statement that touches encrypted pages.
	var n int
	if err := db.QueryRowContext(pingCtx, "SELECT COUNT(*) FROM sqlite_master").Scan(&n); err != nil {
		_ = db.Close()
		return nil, classifyOpenErr(err, d.keyed)
	}
	if err := d.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return d, nil
}

// Close releases the underlying connection.
func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// Path returns the database file path.
func (d *Database) Path() string {
	return d.dbFile
}

func classifyOpenErr(err error, keyed bool) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "file is not a database") || strings.Contains(msg, "file is encrypted") {
		if keyed {
			return ErrWrongPassphrase
		}
		return ErrDatabaseEncrypted
	}
	if strings.Contains(msg, "malformed") {
		return ErrDatabaseCorrupted
	}
	return err
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (d *Database) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

func (d *Database) withDBContext(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	return fn(ctx)
}

func withDBContextResult[T any](d *Database, ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	return fn(ctx)
}

// WithTx runs fn inside a transaction, rolling back when fn returns an error.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return rollbackWithLog(tx, err)
	}
	return tx.Commit()
}

func rollbackWithLog(tx *sql.Tx, err error) error {
	if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
		log.Printf("rollback failed: %v", rbErr)
	}
	return err
}

func (d *Database) migrate(ctx context.Context) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS user_settings (
			user_id INTEGER PRIMARY KEY,
			work_minutes INTEGER NOT NULL,
			short_break_minutes INTEGER NOT NULL,
			long_break_minutes INTEGER NOT NULL,
			sessions_until_long_break INTEGER NOT NULL,
			sound_enabled INTEGER DEFAULT 1,
			notifications_enabled INTEGER DEFAULT 1,
			auto_start_breaks INTEGER DEFAULT 0,
			auto_start_work INTEGER DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			status TEXT DEFAULT 'open',
			pomodoros INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			completed_at DATETIME,
			FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			task_id INTEGER,
			phase TEXT NOT NULL,
			status TEXT NOT NULL,
			remaining_seconds INTEGER NOT NULL,
			completed_work_count INTEGER DEFAULT 0,
			completed_break_count INTEGER DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			ended_at DATETIME,
			FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY(task_id) REFERENCES tasks(id) ON DELETE SET NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_status ON sessions(user_id, status);`,
		`CREATE TABLE IF NOT EXISTS phase_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			user_id INTEGER NOT NULL,
			task_id INTEGER,
			phase TEXT NOT NULL,
			planned_seconds INTEGER NOT NULL,
			actual_seconds INTEGER NOT NULL,
			skipped INTEGER DEFAULT 0,
			interrupted INTEGER DEFAULT 0,
			ended_at DATETIME NOT NULL,
			FOREIGN KEY(session_id) REFERENCES sessions(id) ON DELETE CASCADE,
			FOREIGN KEY(task_id) REFERENCES tasks(id) ON DELETE SET NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_phase_logs_user_ended ON phase_logs(user_id, ended_at);`,
	}
	for _, query := range queries {
		if _, err := d.DB.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	// Columns added after the first release.
	alters := []string{
		"ALTER TABLE tasks ADD COLUMN pomodoros INTEGER DEFAULT 0",
		"ALTER TABLE phase_logs ADD COLUMN interrupted INTEGER DEFAULT 0",
	}
	for _, query := range alters {
		if _, err := d.DB.ExecContext(ctx, query); err != nil && !isIgnorableMigrationErr(err) {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func isIgnorableMigrationErr(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "duplicate column name")
}

// DatabaseHasData reports whether any user content exists.
func (d *Database) DatabaseHasData(ctx context.Context) bool {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	var count int
	err := d.DB.QueryRowContext(ctx, "SELECT (SELECT COUNT(1) FROM sessions) + (SELECT COUNT(1) FROM tasks)").Scan(&count)
	return err == nil && count > 0
}
