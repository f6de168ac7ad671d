// Package config loads cabinetry settings from a TOML file.
//
// Command-line flags override file values; the file overrides defaults. The
// file is optional and lives at $XDG_CONFIG_HOME/cabinetry/config.toml
// unless --config names another one:
//
//	rules = "rules/cabinet.yaml"
//
//	[log]
//	level = "info"
//
//	[cache]
//	redis = "redis://localhost:6379/0"
//	prefix = "cabinetry:"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	cerrors "github.com/matzehuels/cabinetry/pkg/errors"
)

// Config holds all settings.
type Config struct {
	// Rules is the rule file used when a command gets none.
	Rules string `toml:"rules"`

	Log    LogConfig    `toml:"log"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// CacheConfig selects the result cache. Redis wins over Dir when both are set.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"`
	Redis    string `toml:"redis"`
	Prefix   string `toml:"prefix"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
}

// Duration is a time.Duration written as a string ("30s") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{30 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
			MaxBodyBytes:    10 << 20,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cabinetry", "config.toml"), nil
}

// Load reads path over the defaults. An empty path reads DefaultPath and
// tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidFormat, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, cerrors.New(cerrors.ErrCodeInvalidFormat, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "log.level")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "server.max_body_bytes must be positive")
	}
	return nil
}

// LogLevel returns the configured level, falling back to info.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
