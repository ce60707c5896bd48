package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Config holds all configuration for the application.
type Config struct {
	// Server
	Port        string `env:"PORT" envDefault:"8080"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, production

	// Shell
	Lang        string   `env:"SHELL_LANG" envDefault:"en"`
	Title       string   `env:"SHELL_TITLE" envDefault:"VPM Shell"`
	Description string   `env:"SHELL_DESCRIPTION" envDefault:"Manage Unity projects and VPM packages"`
	FontFamily  string   `env:"SHELL_FONT_FAMILY" envDefault:"Noto Sans JP"`
	FontSubsets []string `env:"SHELL_FONT_SUBSETS" envDefault:"latin" envSeparator:","`
	FontLocal   bool     `env:"SHELL_FONT_LOCAL" envDefault:"false"`

	// Empty weights load the family's default; an empty fallback keeps the system stack.
	FontWeights  []string `env:"SHELL_FONT_WEIGHTS" envSeparator:","`
	FontDisplay  string   `env:"SHELL_FONT_DISPLAY" envDefault:"swap"`
	FontFallback []string `env:"SHELL_FONT_FALLBACK" envSeparator:","`

	// Storage: a postgres:// URL or a SQLite file
	DatabaseURL string `env:"DATABASE_URL" envDefault:"file:vpmshell.db"`

	// Downloaded package archives; defaults to the user cache directory
	PackageCacheDir string `env:"PACKAGE_CACHE_DIR"`

	// Preferences cookie
	PrefsSecret string        `env:"PREFS_SECRET"`
	PrefsMaxAge time.Duration `env:"PREFS_MAX_AGE" envDefault:"8760h"`

	// Logging
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogBufferSize int    `env:"LOG_BUFFER_SIZE" envDefault:"500"`
}

var (
	ErrInvalidLang       = errors.New("SHELL_LANG is not a valid BCP 47 language tag")
	ErrMissingSecret     = errors.New("PREFS_SECRET is required in production")
	ErrShortSecret       = errors.New("PREFS_SECRET must be at least 64 characters")
	ErrInvalidBufferSize = errors.New("LOG_BUFFER_SIZE must be positive")
	ErrInvalidLogLevel   = errors.New("LOG_LEVEL must be one of debug, info, warn, error")
	ErrInvalidDisplay    = errors.New("SHELL_FONT_DISPLAY must be one of auto, block, swap, fallback, optional")
)

var fontDisplays = []string{"auto", "block", "swap", "fallback", "optional"}

// Load reads configuration from environment variables.
// In development, it will also load from a .env file if present.
func Load() (*Config, error) {
	// Missing .env is fine
	_ = godotenv.Load()
	return parse(env.Options{})
}

// LoadEnv reads configuration from the given variables only, ignoring the
// process environment.
func LoadEnv(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	tag, err := language.Parse(strings.TrimSpace(c.Lang))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLang, c.Lang)
	}
	c.Lang = tag.String()

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	if c.LogBufferSize <= 0 {
		return ErrInvalidBufferSize
	}

	if !slices.Contains(fontDisplays, c.FontDisplay) {
		return fmt.Errorf("%w: %q", ErrInvalidDisplay, c.FontDisplay)
	}

	if c.PackageCacheDir == "" {
		c.PackageCacheDir = defaultCacheDir()
	}

	switch {
	case c.PrefsSecret == "" && c.IsProduction():
		return ErrMissingSecret
	case c.PrefsSecret == "":
		// Development: preferences only survive until restart
		c.PrefsSecret = hex.EncodeToString(securecookie.GenerateRandomKey(32))
	case len(c.PrefsSecret) < 64:
		return fmt.Errorf("%w, got %d", ErrShortSecret, len(c.PrefsSecret))
	}

	return nil
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "vpmshell-cache"
	}
	return filepath.Join(dir, "vpmshell")
}

// SlogLevel maps LOG_LEVEL to a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return level, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}
