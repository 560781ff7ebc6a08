package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"EBOARD_PROFILE", "EBOARD_CONFIG", "SECRET_KEY", "DATABASE_URI", "EBOARD_ADDR", "EBOARD_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoad_developmentDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Profile != Development {
		t.Errorf("Profile = %s, want development", cfg.Profile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if !cfg.Session.Strong {
		t.Error("sessions should default to strong mode")
	}
}

func TestLoad_testingProfile(t *testing.T) {
	clearEnv(t)
	t.Setenv("EBOARD_PROFILE", "Testing")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DatabaseURI != ":memory:" {
		t.Errorf("DatabaseURI = %s, want :memory:", cfg.DatabaseURI)
	}
	if cfg.BcryptCost != bcrypt.MinCost {
		t.Errorf("BcryptCost = %d, want %d", cfg.BcryptCost, bcrypt.MinCost)
	}
}

func TestLoad_productionRequiresSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("EBOARD_PROFILE", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without SECRET_KEY in production")
	}

	t.Setenv("SECRET_KEY", "short")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for short SECRET_KEY in production")
	}

	t.Setenv("SECRET_KEY", "a-long-enough-production-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Session.Secure {
		t.Error("production cookies should be Secure")
	}
}

func TestLoad_unknownProfile(t *testing.T) {
	clearEnv(t)
	t.Setenv("EBOARD_PROFILE", "staging")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "staging") {
		t.Fatalf("expected unknown profile error, got %v", err)
	}
}

func TestLoad_fileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "eboard.yaml")
	content := `
database_uri: sqlite:///tmp/from-file.db
listen_addr: ":9000"
log_level: warn
session:
  cookie_name: board
  max_age: 2h
  strong: false
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EBOARD_CONFIG", path)
	t.Setenv("DATABASE_URI", ":memory:")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DatabaseURI != ":memory:" {
		t.Errorf("env should override file, got %s", cfg.DatabaseURI)
	}
	if cfg.ListenAddr != ":9000" || cfg.LogLevel != "warn" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Session.CookieName != "board" || cfg.Session.Strong {
		t.Errorf("session section not applied: %+v", cfg.Session)
	}
	if d, _ := cfg.SessionMaxAge(); d != 2*time.Hour {
		t.Errorf("SessionMaxAge() = %v, want 2h", d)
	}
}

func TestLoad_badFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EBOARD_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty secret", func(c *Config) { c.SecretKey = "" }},
		{"empty database", func(c *Config) { c.DatabaseURI = "" }},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }},
		{"cost too low", func(c *Config) { c.BcryptCost = 1 }},
		{"bad max age", func(c *Config) { c.Session.MaxAge = "forever" }},
		{"negative max age", func(c *Config) { c.Session.MaxAge = "-1h" }},
		{"no cookie name", func(c *Config) { c.Session.CookieName = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults(Development)
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}
