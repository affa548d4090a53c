// Package config resolves settings from defaults, an optional YAML file and
// the environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/action-shelf/internal/view"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	FormatText = "text"
	FormatJSON = "json"
)

// Config holds resolved settings.
type Config struct {
	DataPath string `yaml:"data_path" env:"ACTION_SHELF_DATA"`
	Backend  string `yaml:"backend" env:"ACTION_SHELF_BACKEND"`
	Format   string `yaml:"format" env:"ACTION_SHELF_FORMAT"`
	LogLevel string `yaml:"log_level" env:"ACTION_SHELF_LOG_LEVEL"`
	Sort     string `yaml:"sort" env:"ACTION_SHELF_SORT"`
	Color    *bool  `yaml:"color" env:"ACTION_SHELF_COLOR"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Backend:  BackendJSON,
		Format:   FormatText,
		LogLevel: "warn",
		Sort:     string(view.SortName),
	}
}

// Dir is the per-user directory holding data and config.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".action-shelf")
}

// FilePath returns the config file location: $ACTION_SHELF_CONFIG or
// ~/.action-shelf/config.yaml.
func FilePath() string {
	if p := os.Getenv("ACTION_SHELF_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.yaml")
}

// Load resolves configuration. A missing file at path is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ResolvedDataPath returns DataPath or the backend's default file.
func (c Config) ResolvedDataPath() string {
	if c.DataPath != "" {
		return expandHome(c.DataPath)
	}
	if c.Backend == BackendSQLite {
		return filepath.Join(Dir(), "actions.db")
	}
	return filepath.Join(Dir(), "actions.json")
}

// Validate rejects unknown enumerated values.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("invalid backend %q: must be json or sqlite", c.Backend)
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid format %q: must be text or json", c.Format)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if _, err := view.ParseSortKey(c.Sort); err != nil {
		return err
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}
