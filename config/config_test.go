package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != "https://www.funda.nl" {
		t.Errorf("base url = %q", cfg.BaseURL)
	}
	if cfg.ListPageDelay <= 0 {
		t.Error("list page delay must default to a positive pause")
	}
	if cfg.Headers["Accept-Language"] == "" {
		t.Error("default header set incomplete")
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("base_url: http://localhost:8080\nlist_page_delay: 50ms\nparallelism: 2\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("base url = %q", cfg.BaseURL)
	}
	if cfg.ListPageDelay.Std() != 50*time.Millisecond {
		t.Errorf("list page delay = %v", cfg.ListPageDelay)
	}
	if cfg.Parallelism != 2 {
		t.Errorf("parallelism = %d", cfg.Parallelism)
	}
	if cfg.DataDir != "data" {
		t.Errorf("unset key must keep its default, data dir = %q", cfg.DataDir)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("FUNDA_BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("FUNDA_DATA_DIR", "/tmp/funda-test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != "http://127.0.0.1:9999" {
		t.Errorf("base url = %q", cfg.BaseURL)
	}
	if cfg.DataDir != "/tmp/funda-test" {
		t.Errorf("data dir = %q", cfg.DataDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
