package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want %q", cfg.Server.Addr(), "0.0.0.0:8080")
	}
	if cfg.Server.Variant != "a" {
		t.Errorf("Variant = %q, want %q", cfg.Server.Variant, "a")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "text")
	}
	if cfg.Probe.URL != "http://127.0.0.1:8080" {
		t.Errorf("Probe.URL = %q, want %q", cfg.Probe.URL, "http://127.0.0.1:8080")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canned.yaml")
	data := []byte("server:\n  port: 9191\n  variant: c\nlogging:\n  format: json\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Server.Port != 9191 {
		t.Errorf("Port = %d, want 9191", cfg.Server.Port)
	}
	if cfg.Server.Variant != "c" {
		t.Errorf("Variant = %q, want %q", cfg.Server.Variant, "c")
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want default %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CANNED_VARIANT", "b")
	t.Setenv("CANNED_PORT", "9000")
	t.Setenv("CANNED_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Variant != "b" {
		t.Errorf("Variant = %q, want %q", cfg.Server.Variant, "b")
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatal("LoadFile: expected error for malformed file")
	}
}

func TestDefaultFileMatchesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(DefaultFile), 0644); err != nil {
		t.Fatal(err)
	}

	fromFile, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	t.Setenv("HOME", t.TempDir())
	defaults, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if *fromFile != *defaults {
		t.Errorf("DefaultFile = %+v, want %+v", *fromFile, *defaults)
	}
}
