// Package config loads the site configuration: defaults, then an
// optional YAML file, then PORTFOLIO_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PORTFOLIO_"

type Admin struct {
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	PasswordHash string `koanf:"password_hash"`
}

type Config struct {
	Port          string        `koanf:"port"`
	DBPath        string        `koanf:"db_path"`
	Email         string        `koanf:"email"`
	GinMode       string        `koanf:"gin_mode"`
	ToastDuration time.Duration `koanf:"toast_duration"`
	SessionTTL    time.Duration `koanf:"session_ttl"`
	MaxSessions   int           `koanf:"max_sessions"`
	RetentionDays int           `koanf:"retention_days"`
	Admin         Admin         `koanf:"admin"`
}

func Default() *Config {
	return &Config{
		Port:          "8080",
		DBPath:        "data/portfolio.db",
		GinMode:       "debug",
		ToastDuration: 3000 * time.Millisecond,
		SessionTTL:    30 * time.Minute,
		MaxSessions:   10000,
		RetentionDays: 365,
	}
}

// Load reads path if it exists and overlays the environment. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// PORTFOLIO_ADMIN__PASSWORD_HASH -> admin.password_hash
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.applyLegacyEnv()
	return cfg, nil
}

// applyLegacyEnv honours the unprefixed variables older deployments set.
func (c *Config) applyLegacyEnv() {
	if v := os.Getenv("PORT"); v != "" && os.Getenv(envPrefix+"PORT") == "" {
		c.Port = v
	}
	if v := os.Getenv("ADMIN_USERNAME"); v != "" && c.Admin.Username == "" {
		c.Admin.Username = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" && c.Admin.Password == "" {
		c.Admin.Password = v
	}
}

var validate = validator.New()

var validModes = map[string]bool{"debug": true, "release": true, "test": true}

func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	if !validModes[c.GinMode] {
		errs = append(errs, fmt.Errorf("invalid gin_mode %q: must be one of debug, release, test", c.GinMode))
	}
	if c.ToastDuration <= 0 {
		errs = append(errs, errors.New("toast_duration must be positive"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("session_ttl must be positive"))
	}
	if c.MaxSessions < 1 {
		errs = append(errs, errors.New("max_sessions must be at least 1"))
	}
	if c.RetentionDays < 1 {
		errs = append(errs, errors.New("retention_days must be at least 1"))
	}
	if c.Email != "" && validate.Var(c.Email, "email") != nil {
		errs = append(errs, fmt.Errorf("invalid email %q", c.Email))
	}
	return errors.Join(errs...)
}

func (c *Config) Addr() string { return ":" + c.Port }
