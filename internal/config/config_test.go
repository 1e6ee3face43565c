package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Session != "default" {
		t.Errorf("expected default session, got %q", cfg.Session)
	}
	if cfg.Format != "json" {
		t.Errorf("expected json format, got %q", cfg.Format)
	}
	if cfg.LogLevel != slog.LevelWarn {
		t.Errorf("expected WARN, got %v", cfg.LogLevel)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.Addr)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FITFIZZ_SESSION", "alice")
	t.Setenv("FITFIZZ_LOG_LEVEL", "debug")
	t.Setenv("FITFIZZ_DB", "/tmp/x.db")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Session != "alice" {
		t.Errorf("expected alice, got %q", cfg.Session)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected DEBUG, got %v", cfg.LogLevel)
	}
	if cfg.ResolveDBPath() != "/tmp/x.db" {
		t.Errorf("expected explicit db path, got %q", cfg.ResolveDBPath())
	}
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("FITFIZZ_FORMAT=text\nFITFIZZ_LANG=de\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv sets real process variables; register cleanup through t.Setenv.
	t.Setenv("FITFIZZ_FORMAT", "")
	os.Unsetenv("FITFIZZ_FORMAT")
	t.Setenv("FITFIZZ_LANG", "")
	os.Unsetenv("FITFIZZ_LANG")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Format != "text" || cfg.Lang != "de" {
		t.Errorf("expected dotenv values, got format=%q lang=%q", cfg.Format, cfg.Lang)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("FITFIZZ_LOG_LEVEL", "loud")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
