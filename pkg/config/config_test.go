package config

import (
	"testing"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_CONN_STR", "host=db user=app dbname=sociograph")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("RETENTION_DAYS", "7")
	t.Setenv("REAP_INTERVAL_HOURS", "6")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.PostgresConnStr != "host=db user=app dbname=sociograph" {
		t.Errorf("PostgresConnStr = %q, want the env value", cfg.PostgresConnStr)
	}
	if cfg.JWTSecret != "from-env" {
		t.Errorf("JWTSecret = %q, want from-env", cfg.JWTSecret)
	}
	if cfg.RetentionDays != 7 {
		t.Errorf("RetentionDays = %d, want 7", cfg.RetentionDays)
	}
	if cfg.ReapIntervalHours != 6 {
		t.Errorf("ReapIntervalHours = %d, want 6", cfg.ReapIntervalHours)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "RETENTION_DAYS", "REAP_INTERVAL_HOURS"} {
		t.Setenv(key, "")
	}
	t.Setenv("RETENTION_DAYS", "not-a-number")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want default 8080", cfg.Port)
	}
	if cfg.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d, want default 30 on a bad value", cfg.RetentionDays)
	}
	if cfg.ReapIntervalHours != 24 {
		t.Errorf("ReapIntervalHours = %d, want default 24", cfg.ReapIntervalHours)
	}
}

func TestInitDBRequiresConnStr(t *testing.T) {
	if _, err := InitDB(&Config{}); err == nil {
		t.Fatal("InitDB must fail without a connection string")
	}
}
