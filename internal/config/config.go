// Package config resolves the server configuration from a profile, an
// optional YAML file and environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/kimhsiao/eboard/internal/logging"
)

// Profile selects a block of defaults.
type Profile string

const (
	Development Profile = "development"
	Production  Profile = "production"
	Testing     Profile = "testing"
)

// devSecret is only acceptable outside production.
const devSecret = "eboard-development-secret"

// Config holds everything the server needs at startup.
type Config struct {
	Profile     Profile `yaml:"-"`
	SecretKey   string  `yaml:"secret_key"`
	DatabaseURI string  `yaml:"database_uri"`
	ListenAddr  string  `yaml:"listen_addr"`
	LogLevel    string  `yaml:"log_level"`

	// BcryptCost is the password KDF work factor.
	BcryptCost int `yaml:"bcrypt_cost"`

	Session SessionSection `yaml:"session"`
}

// SessionSection configures the session cookie.
type SessionSection struct {
	CookieName string `yaml:"cookie_name"`
	// MaxAge uses Go duration syntax ("720h").
	MaxAge string `yaml:"max_age"`
	// Strong binds a session to the client's address and user agent.
	Strong bool `yaml:"strong"`
	Secure bool `yaml:"secure"`
}

// Defaults returns the built-in settings for a profile.
func Defaults(p Profile) Config {
	cfg := Config{
		Profile:     p,
		SecretKey:   devSecret,
		DatabaseURI: "sqlite:///" + filepath.Join("data", "eboard.db"),
		ListenAddr:  ":5000",
		LogLevel:    "info",
		BcryptCost:  bcrypt.DefaultCost,
		Session: SessionSection{
			CookieName: "eboard_session",
			MaxAge:     "720h",
			Strong:     true,
		},
	}
	switch p {
	case Development:
		cfg.LogLevel = "debug"
	case Production:
		cfg.SecretKey = ""
		cfg.Session.Secure = true
	case Testing:
		cfg.DatabaseURI = ":memory:"
		cfg.BcryptCost = bcrypt.MinCost
		cfg.LogLevel = "warn"
	}
	return cfg
}

// Load builds the configuration from the environment.
func Load() (Config, error) {
	profile := Profile(strings.ToLower(strings.TrimSpace(os.Getenv("EBOARD_PROFILE"))))
	if profile == "" {
		profile = Development
	}
	switch profile {
	case Development, Production, Testing:
	default:
		return Config{}, fmt.Errorf("unknown profile %q", profile)
	}

	cfg := Defaults(profile)

	if path := os.Getenv("EBOARD_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile overlays values from a YAML file onto cfg.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("DATABASE_URI"); v != "" {
		cfg.DatabaseURI = v
	}
	if v := os.Getenv("EBOARD_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("EBOARD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY must be set")
	}
	if c.Profile == Production && (c.SecretKey == devSecret || len(c.SecretKey) < 16) {
		return errors.New("SECRET_KEY must be at least 16 bytes and not the development default in production")
	}
	if c.DatabaseURI == "" {
		return errors.New("DATABASE_URI must be set")
	}
	if c.ListenAddr == "" {
		return errors.New("listen_addr must be set")
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.Session.CookieName == "" {
		return errors.New("session.cookie_name must be set")
	}
	if _, err := c.SessionMaxAge(); err != nil {
		return err
	}
	return nil
}

// SessionMaxAge parses the configured session lifetime.
func (c Config) SessionMaxAge() (time.Duration, error) {
	d, err := time.ParseDuration(c.Session.MaxAge)
	if err != nil {
		return 0, fmt.Errorf("invalid session.max_age %q: %w", c.Session.MaxAge, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("session.max_age must be positive")
	}
	return d, nil
}
