package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/akyairhashvil/pomotrack/internal/database"
)

type Exporter interface {
	ExportVault(ctx context.Context, opts database.ExportOptions) ([]byte, error)
}

// WriteExport writes a vault export into dir, encrypted when passphrase is set.
func WriteExport(ctx context.Context, ex Exporter, dir, passphrase string, now time.Time) (string, error) {
	raw, err := ex.ExportVault(ctx, database.ExportOptions{
		EncryptOutput: passphrase != "",
		Passphrase:    passphrase,
	})
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("pomotrack_export_%s.json", now.Format("20060102_150405")))
	if err := os.WriteFile(filename, raw, 0o600); err != nil {
		return "", err
	}
	return filename, nil
}
