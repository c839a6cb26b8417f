package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `
app:
  name: settrack
  env: dev
api:
  port: "8080"
  read_timeout: 10s
database:
  postgres:
    host: localhost
    port: 5432
    user: settrack
    dbname: settrack
    sslmode: disable
sources:
  google_finance:
    base_url: https://www.google.com
    timeout: 15s
smtp:
  port: 587
scheduler:
  enabled: true
  hourly_spec: "@hourly"
  daily_spec: "0 18 * * 1-5"
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeSample(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Name != "settrack" {
		t.Errorf("app name = %q, want settrack", cfg.App.Name)
	}
	if cfg.API.Port != "8080" {
		t.Errorf("api port = %q, want 8080", cfg.API.Port)
	}
	if cfg.API.ReadTimeout != 10*time.Second {
		t.Errorf("read timeout = %v, want 10s", cfg.API.ReadTimeout)
	}
	if cfg.Database.Postgres.Port != 5432 {
		t.Errorf("db port = %d, want 5432", cfg.Database.Postgres.Port)
	}
	if !cfg.Scheduler.Enabled {
		t.Error("scheduler should be enabled")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "15432")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("API_PORT", "9090")

	cfg, err := LoadConfig(writeSample(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Postgres.Host != "db.internal" {
		t.Errorf("db host = %q, want db.internal", cfg.Database.Postgres.Host)
	}
	if cfg.Database.Postgres.Port != 15432 {
		t.Errorf("db port = %d, want 15432", cfg.Database.Postgres.Port)
	}
	if cfg.SMTP.Host != "smtp.example.com" {
		t.Errorf("smtp host = %q, want smtp.example.com", cfg.SMTP.Host)
	}
	if cfg.API.Port != "9090" {
		t.Errorf("api port = %q, want 9090", cfg.API.Port)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
