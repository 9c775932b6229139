package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.PreviewRows != 20 || c.Addr != "127.0.0.1:8501" || c.DataPath != "nba_games.csv" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.DelimiterRune() != 0 {
		t.Fatalf("auto delimiter should be 0")
	}
}

func TestSaveThenLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	c := &Global{DataPath: "games.tsv", Delimiter: "tab", Addr: ":9000", PreviewRows: 5, LogFormat: "json"}
	if err := Save(c, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DataPath != "games.tsv" || got.PreviewRows != 5 || got.Addr != ":9000" {
		t.Fatalf("round trip lost values: %+v", got)
	}
	if got.DelimiterRune() != '\t' {
		t.Fatalf("delimiter = %q", got.DelimiterRune())
	}
}

func TestEnvOverridesFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte("preview_rows: 7\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("COURTSIDE_PREVIEW_ROWS", "3")
	got, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.PreviewRows != 3 {
		t.Fatalf("PreviewRows = %d, want 3 from env", got.PreviewRows)
	}
}

func TestDefaultsMatchLoad(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d := Defaults()
	if got.ReadTimeoutSec != d.ReadTimeoutSec || got.WriteTimeoutSec != d.WriteTimeoutSec || got.LogFormat != d.LogFormat {
		t.Fatalf("Load defaults %+v differ from Defaults %+v", got, d)
	}
	if d.ReadTimeoutSec <= 0 || d.WriteTimeoutSec <= 0 {
		t.Fatalf("default timeouts must be positive: %+v", d)
	}
}

func TestLoadRejectsBadDelimiter(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("COURTSIDE_DELIMITER", ";;")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected error for multi-character delimiter")
	}
	c := &Global{Delimiter: ";;"}
	if c.DelimiterRune() != 0 {
		t.Fatalf("unknown delimiter should fall back to auto")
	}
	if !ValidDelimiter("|") || (&Global{Delimiter: "|"}).DelimiterRune() != '|' {
		t.Fatalf("pipe delimiter should be accepted")
	}
}
