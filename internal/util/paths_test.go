package util

import (
	"path/filepath"
	"testing"
)

func TestDataDirHonorsXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)
	if got, want := DataDir("pomotrack"), filepath.Join(base, "pomotrack"); got != want {
		t.Fatalf("DataDir = %q, want %q", got, want)
	}
}

func TestConfigDirHonorsXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	if got, want := ConfigDir("pomotrack"), filepath.Join(base, "pomotrack"); got != want {
		t.Fatalf("ConfigDir = %q, want %q", got, want)
	}
}

func TestReportsDirUsesDocuments(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_DOCUMENTS_DIR", base)
	if got, want := ReportsDir("pomotrack"), filepath.Join(base, "POMOTRACK"); got != want {
		t.Fatalf("ReportsDir = %q, want %q", got, want)
	}
}

func TestParseUserDir(t *testing.T) {
	data := "# comment\nXDG_DESKTOP_DIR=\"$HOME/Desktop\"\nXDG_DOCUMENTS_DIR=\"$HOME/Docs\"\n"
	if got := parseUserDir(data, "XDG_DOCUMENTS_DIR"); got != "$HOME/Docs" {
		t.Fatalf("parseUserDir = %q", got)
	}
	if got := parseUserDir(data, "XDG_MUSIC_DIR"); got != "" {
		t.Fatalf("expected empty for missing key, got %q", got)
	}
}
