package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/phonebook/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the XDG dirs at a temp dir so no real config leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "phonebook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendBadger, cfg.Backend)
	assert.Equal(t, core.DefaultCategories(), cfg.Categories)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "data", "phonebook", "badger"), cfg.DBPath)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `
backend: sqlite
db_path: /tmp/contacts.db
categories: [Clients, Vendors]
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "/tmp/contacts.db", cfg.DBPath)
	assert.Equal(t, []string{"Clients", "Vendors"}, cfg.Categories)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "backend: badger\nlog_level: warn\n")
	t.Setenv("PHONEBOOK_BACKEND", "sqlite")
	t.Setenv("PHONEBOOK_CATEGORIES", "Home,Office")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, []string{"Home", "Office"}, cfg.Categories)
	assert.Equal(t, filepath.Join(dir, "data", "phonebook", "phonebook.db"), cfg.DBPath)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "backend is case-insensitive", mutate: func(c *Config) { c.Backend = " SQLite " }},
		{name: "unknown backend", mutate: func(c *Config) { c.Backend = "postgres" }, wantErr: true},
		{name: "no categories", mutate: func(c *Config) { c.Categories = nil }, wantErr: true},
		{name: "duplicate categories", mutate: func(c *Config) { c.Categories = []string{"Work", "work"} }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, cfg.DBPath)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for input, want := range tests {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLevel("trace")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
