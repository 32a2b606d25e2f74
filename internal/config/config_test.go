// ABOUTME: Tests for configuration loading, defaults, and path expansion
// ABOUTME: Uses XDG environment overrides pointed at temp directories

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.FetchTimeout(); got != 30*time.Second {
		t.Errorf("expected 30s fetch timeout, got %v", got)
	}
	if got := cfg.GetSearchLimit(); got != 50 {
		t.Errorf("expected search limit 50, got %d", got)
	}
	if got := cfg.GetGlamourStyle(); got != "dark" {
		t.Errorf("expected dark style, got %q", got)
	}
}

func TestConfiguredValues(t *testing.T) {
	cfg := &Config{
		FetchTimeoutSeconds: 10,
		SearchLimit:         5,
		GlamourStyle:        "light",
	}

	if got := cfg.FetchTimeout(); got != 10*time.Second {
		t.Errorf("expected 10s, got %v", got)
	}
	if got := cfg.GetSearchLimit(); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := cfg.GetGlamourStyle(); got != "light" {
		t.Errorf("expected light, got %q", got)
	}
}

func TestDBPathInsideDataDir(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/quill-test"}
	want := filepath.Join("/tmp/quill-test", "quill.db")
	if got := cfg.DBPath(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory in test environment")
	}

	if got := ExpandPath("~/data"); got != filepath.Join(home, "data") {
		t.Errorf("expected home expansion, got %q", got)
	}
	if got := ExpandPath("~"); got != home {
		t.Errorf("expected home, got %q", got)
	}
	if got := ExpandPath("/absolute/path"); got != "/absolute/path" {
		t.Errorf("absolute path should pass through, got %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("empty path should stay empty, got %q", got)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GetSearchLimit() != 50 {
		t.Errorf("expected default search limit, got %d", cfg.GetSearchLimit())
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	original := &Config{
		DataDir:             "/tmp/quill-data",
		FetchTimeoutSeconds: 12,
		SearchLimit:         7,
		GlamourStyle:        "notty",
	}
	if err := original.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *original {
		t.Errorf("round trip changed config: %+v -> %+v", original, loaded)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "quill", "config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected error for corrupt config")
	}
}
