// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

// Package config loads server configuration from defaults, an optional
// YAML file, and command-line flags, in increasing order of precedence.
package config

import (
	"os"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Defaults.
const (
	DefaultHTTPAddr       = "localhost:8080"
	DefaultMetricsAddr    = "127.0.0.1:9100"
	DefaultLogFormat      = "json"
	DefaultRedisAddr      = "localhost:6379"
	DefaultSessionWindow  = 24 * time.Hour
	DefaultSessionTimeout = 3 * time.Second
)

// Config holds the full server configuration.
type Config struct {
	HTTPAddr    string        `koanf:"http-addr"`
	MetricsAddr string        `koanf:"metrics-addr"`
	LogFormat   string        `koanf:"log-format"`
	DatabaseURL string        `koanf:"database-url"`
	Redis       RedisConfig   `koanf:"redis"`
	Session     SessionConfig `koanf:"session"`
}

// RedisConfig holds session store connection settings.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// SessionConfig holds session manager settings.
type SessionConfig struct {
	Window       time.Duration `koanf:"window"`
	StoreTimeout time.Duration `koanf:"store-timeout"`
}

// RegisterFlags declares the server flags with their defaults. The same
// flag set is handed back to Load so flags override file values.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("http-addr", DefaultHTTPAddr, "HTTP listen address")
	fs.String("metrics-addr", DefaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	fs.String("log-format", DefaultLogFormat, "log format (json or text)")
	fs.String("database-url", "", "PostgreSQL connection URL (default: DATABASE_URL env)")
	fs.String("redis.addr", DefaultRedisAddr, "Redis address for the session store")
	fs.String("redis.password", "", "Redis password")
	fs.Int("redis.db", 0, "Redis database number")
	fs.Duration("session.window", DefaultSessionWindow, "sliding session expiry window")
	fs.Duration("session.store-timeout", DefaultSessionTimeout, "per-call session store timeout")
}

// Load builds the configuration: flag defaults, then the optional YAML
// file, then explicitly set flags.
func Load(configFile string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").
				With("operation", "load config file").
				With("path", configFile).
				Wrap(err)
		}
	}

	// posflag merges flag values over the file: defaults fill gaps,
	// explicitly set flags win.
	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").
			With("operation", "load flags").
			Wrap(err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").
			With("operation", "unmarshal config").
			Wrap(err)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("http-addr is required")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").Errorf("log-format must be 'json' or 'text', got %q", c.LogFormat)
	}
	if c.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database-url (or DATABASE_URL environment variable) is required")
	}
	if c.Redis.Addr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("redis.addr is required")
	}
	if c.Session.Window <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("session.window must be positive")
	}
	if c.Session.StoreTimeout <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("session.store-timeout must be positive")
	}
	return nil
}
