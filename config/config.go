// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads phonebook settings from an optional YAML file, an
// optional .env file and PHONEBOOK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/phonebook/core"
	"github.com/spf13/viper"
)

// Backend names accepted in Config.Backend.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Backend    string   `yaml:"backend" mapstructure:"backend"`
	DBPath     string   `yaml:"db_path" mapstructure:"db_path"`
	Categories []string `yaml:"categories" mapstructure:"categories"`
	LogLevel   string   `yaml:"log_level" mapstructure:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:    BackendBadger,
		Categories: core.DefaultCategories(),
		LogLevel:   "info",
	}
}

// dataDir is where databases live when db_path is not set.
func dataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "phonebook")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "phonebook")
}

// Load reads configuration. An explicit path must exist; with an empty path
// config.yaml is looked up in the working directory and the user config dir,
// and a missing file is not an error. Environment variables override the file.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	defaults := DefaultConfig()
	v := viper.New()
	v.SetDefault("backend", defaults.Backend)
	v.SetDefault("db_path", defaults.DBPath)
	v.SetDefault("categories", defaults.Categories)
	v.SetDefault("log_level", defaults.LogLevel)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "phonebook"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "phonebook"))
		}
	}

	v.SetEnvPrefix("PHONEBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and fills in db_path for the chosen
// backend when it is empty.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendBadger, BackendSQLite:
	default:
		return fmt.Errorf("%w: backend %q (must be badger or sqlite)", ErrInvalidConfig, c.Backend)
	}

	if _, err := core.NewCategorySet(c.Categories...); err != nil {
		return fmt.Errorf("%w: categories: %w", ErrInvalidConfig, err)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if c.DBPath == "" {
		c.DBPath = DefaultDBPath(c.Backend)
	}
	return nil
}

// DefaultDBPath returns the database location used when db_path is unset.
func DefaultDBPath(backend string) string {
	if backend == BackendSQLite {
		return filepath.Join(dataDir(), "phonebook.db")
	}
	return filepath.Join(dataDir(), "badger")
}

// ParseLevel maps debug, info, warn or error to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, level)
	}
}
