package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected default listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.DatabaseDSN != "" {
		t.Fatalf("expected empty default DSN, got %q", cfg.DatabaseDSN)
	}
	if cfg.MigrationsDir != "migrations" {
		t.Fatalf("expected default migrations dir, got %q", cfg.MigrationsDir)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "listenAddr: \":9000\"\nsnapshotDir: /tmp/snapshots\nbcryptCost: 4\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LISTEN_ADDR", ":7000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":7000" {
		t.Fatalf("env must win over file, got %q", cfg.ListenAddr)
	}
	if cfg.SnapshotDir != "/tmp/snapshots" {
		t.Fatalf("expected snapshot dir from file, got %q", cfg.SnapshotDir)
	}
	if cfg.BcryptCost != 4 {
		t.Fatalf("expected bcrypt cost from file, got %d", cfg.BcryptCost)
	}
}

func TestNormalizeConnectionString(t *testing.T) {
	raw := "Host=localhost;Port=5432;Database=ledger_db;Username=postgres;Password=pw;Timeout=30"
	want := "host=localhost port=5432 dbname=ledger_db user=postgres password=pw connect_timeout=30 sslmode=disable"
	if got := normalizeConnectionString(raw); got != want {
		t.Fatalf("normalize = %q, want %q", got, want)
	}

	// libpq form passes through untouched
	passthrough := "host=db port=5432 dbname=x user=y sslmode=require"
	if got := normalizeConnectionString(passthrough); got != passthrough {
		t.Fatalf("passthrough = %q", got)
	}
}
