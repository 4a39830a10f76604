package config

import (
	"os"
	"testing"
)

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("VAULT_DB", "mysql")
	t.Setenv("VAULT_PUBLIC_DIR", "/srv/public")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != 8081 {
		t.Fatalf("expected port 8081, got %d", cfg.Port)
	}
	if cfg.Driver != "mysql" {
		t.Fatalf("expected driver mysql, got %q", cfg.Driver)
	}
	if cfg.PublicDir != "/srv/public" {
		t.Fatalf("expected public dir override, got %q", cfg.PublicDir)
	}
	if cfg.Addr() != ":8081" {
		t.Fatalf("expected listen address :8081, got %q", cfg.Addr())
	}
}

func TestLoadDefaultPort(t *testing.T) {
	// t.Setenv registers the restore; the variable must be absent for the
	// default to apply.
	t.Setenv("PORT", "7860")
	os.Unsetenv("PORT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != 7860 {
		t.Fatalf("expected default port 7860, got %d", cfg.Port)
	}
	if cfg.Driver == "" || cfg.SQLiteDSN == "" {
		t.Fatalf("expected driver and dsn defaults, got %q and %q", cfg.Driver, cfg.SQLiteDSN)
	}
}
