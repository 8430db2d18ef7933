package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
store:
  dir: /tmp/beatlib-test
ui:
  sort: name
logging:
  level: DEBUG
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store.Dir != "/tmp/beatlib-test" {
		t.Errorf("expected store dir /tmp/beatlib-test, got %q", cfg.Store.Dir)
	}
	if cfg.UI.Sort != SortName {
		t.Errorf("expected sort name, got %q", cfg.UI.Sort)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("expected level DEBUG, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.File != DefaultConfig().Logging.File {
		t.Errorf("expected default log file, got %q", cfg.Logging.File)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, "ui:\n  sort: recent\n")
	t.Setenv("BEATLIB_STORE_DIR", "/tmp/from-env")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store.Dir != "/tmp/from-env" {
		t.Errorf("expected env override, got %q", cfg.Store.Dir)
	}
}

func TestLoadConfigRejectsUnknownSort(t *testing.T) {
	path := writeConfig(t, "ui:\n  sort: random\n")

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for an unknown sort order")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Store.Dir = "/tmp/saved"
	cfg.UI.Sort = SortName

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Store.Dir != "/tmp/saved" || loaded.UI.Sort != SortName {
		t.Errorf("unexpected config after round trip: %+v", loaded)
	}
}
