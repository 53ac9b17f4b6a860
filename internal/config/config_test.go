// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportevents/sportevents/internal/config"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	fs := newFlagSet(t, "--database-url", "postgres://localhost/sportevents")

	cfg, err := config.Load("", fs)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, config.DefaultMetricsAddr, cfg.MetricsAddr)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, config.DefaultRedisAddr, cfg.Redis.Addr)
	assert.Equal(t, config.DefaultSessionWindow, cfg.Session.Window)
	assert.Equal(t, config.DefaultSessionTimeout, cfg.Session.StoreTimeout)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
http-addr: "0.0.0.0:9000"
database-url: "postgres://db.internal/sportevents"
redis:
  addr: "redis.internal:6379"
  db: 2
session:
  window: 12h
`)
	fs := newFlagSet(t)

	cfg, err := config.Load(path, fs)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.HTTPAddr)
	assert.Equal(t, "postgres://db.internal/sportevents", cfg.DatabaseURL)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 12*time.Hour, cfg.Session.Window)
	// Untouched values keep their flag defaults.
	assert.Equal(t, config.DefaultSessionTimeout, cfg.Session.StoreTimeout)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeConfigFile(t, `
http-addr: "0.0.0.0:9000"
database-url: "postgres://db.internal/sportevents"
`)
	fs := newFlagSet(t, "--http-addr", "127.0.0.1:7000")

	cfg, err := config.Load(path, fs)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.HTTPAddr)
	assert.Equal(t, "postgres://db.internal/sportevents", cfg.DatabaseURL)
}

func TestLoad_DatabaseURLFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env.internal/sportevents")
	fs := newFlagSet(t)

	cfg, err := config.Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env.internal/sportevents", cfg.DatabaseURL)
}

func TestLoad_MissingFile(t *testing.T) {
	fs := newFlagSet(t, "--database-url", "postgres://localhost/sportevents")

	_, err := config.Load("/does/not/exist.yaml", fs)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			HTTPAddr:    "localhost:8080",
			LogFormat:   "json",
			DatabaseURL: "postgres://localhost/sportevents",
			Redis:       config.RedisConfig{Addr: "localhost:6379"},
			Session: config.SessionConfig{
				Window:       24 * time.Hour,
				StoreTimeout: 3 * time.Second,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "missing http addr", mutate: func(c *config.Config) { c.HTTPAddr = "" }, wantErr: true},
		{name: "bad log format", mutate: func(c *config.Config) { c.LogFormat = "xml" }, wantErr: true},
		{name: "missing database url", mutate: func(c *config.Config) { c.DatabaseURL = "" }, wantErr: true},
		{name: "missing redis addr", mutate: func(c *config.Config) { c.Redis.Addr = "" }, wantErr: true},
		{name: "zero session window", mutate: func(c *config.Config) { c.Session.Window = 0 }, wantErr: true},
		{name: "negative store timeout", mutate: func(c *config.Config) { c.Session.StoreTimeout = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
