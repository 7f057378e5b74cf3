package database

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
)

// EncryptionInfo describes whether the open database is keyed.
type EncryptionInfo struct {
	Available bool
	Encrypted bool
}

var (
	cipherOnce      sync.Once
	cipherAvailable bool
)

// SQLCipherCompiled reports whether the linked SQLite library understands PRAGMA key.
func SQLCipherCompiled() bool {
	cipherOnce.Do(func() {
		db, err := sql.Open("sqlite3", ":memory:")
		if err != nil {
			return
		}
		defer db.Close()
		var version sql.NullString
		if err := db.QueryRow("PRAGMA cipher_version").Scan(&version); err == nil {
			cipherAvailable = version.Valid && version.String != ""
		}
	})
	return cipherAvailable
}

func (d *Database) detectSQLCipher(ctx context.Context) (bool, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	var version sql.NullString
	err := d.DB.QueryRowContext(ctx, "PRAGMA cipher_version").Scan(&version)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return version.Valid && version.String != "", nil
}

// EncryptionStatus reports SQLCipher availability and whether this database was opened with a key.
func (d *Database) EncryptionStatus() EncryptionInfo {
	return EncryptionInfo{Available: SQLCipherCompiled(), Encrypted: d.keyed}
}

// RekeyDB changes the key of an encrypted database.
func (d *Database) RekeyDB(ctx context.Context, key string) error {
	if !d.keyed {
		return fmt.Errorf("rekey: %w", ErrDatabaseNotEncrypted)
	}
	if key == "" {
		return fmt.Errorf("rekey: empty passphrase")
	}
	return d.withDBContext(ctx, func(ctx context.Context) error {
		_, err := d.DB.ExecContext(ctx, fmt.Sprintf("PRAGMA rekey = %s", quoteLiteral(key)))
		return err
	})
}

var sqliteHeader = []byte("SQLite format 3\x00")

// IsEncryptedFile reports whether path exists and lacks the plaintext SQLite header.
func IsEncryptedFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	head := make([]byte, len(sqliteHeader))
	n, err := io.ReadFull(f, head)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		// Empty or truncated files are created fresh by sqlite.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !bytes.Equal(head[:n], sqliteHeader), nil
}
