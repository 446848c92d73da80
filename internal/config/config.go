// Package config resolves runtime settings: built-in defaults, then an
// optional YAML file, then CITYPLAN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dir is the per-user directory holding the database and config file.
const Dir = ".cityplan"

// Config holds all runtime configuration.
type Config struct {
	DBPath       string `yaml:"db_path"`
	LogUseCases  bool   `yaml:"log_use_cases"`
	Currency     string `yaml:"currency"`
	ExportFormat string `yaml:"export_format"`

	// Path of the config file that was read, empty when none existed.
	Source string `yaml:"-"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig(home string) Config {
	return Config{
		DBPath:       filepath.Join(home, Dir, "cityplan.db"),
		LogUseCases:  false,
		Currency:     "$",
		ExportFormat: "json",
	}
}

// DefaultPath returns the config file location under home.
func DefaultPath(home string) string {
	return filepath.Join(home, Dir, "config.yaml")
}

// Load builds the configuration for the current user.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return LoadFrom(home)
}

// LoadFrom is Load with an explicit home directory.
func LoadFrom(home string) (Config, error) {
	cfg := DefaultConfig(home)

	path := os.Getenv("CITYPLAN_CONFIG")
	explicit := path != ""
	if !explicit {
		path = DefaultPath(home)
	}
	if err := cfg.loadFile(path, explicit); err != nil {
		return Config{}, err
	}

	cfg.applyEnv()
	cfg.DBPath = expandHome(cfg.DBPath, home)

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// loadFile overlays values from a YAML file. A missing default file is not
// an error; a missing file named by CITYPLAN_CONFIG is.
func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	parsed := *c
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults(*c)
	parsed.Source = path
	*c = parsed
	return nil
}

// applyDefaults restores fields a file set to empty strings.
func (c *Config) applyDefaults(base Config) {
	if strings.TrimSpace(c.DBPath) == "" {
		c.DBPath = base.DBPath
	}
	if c.Currency == "" {
		c.Currency = base.Currency
	}
	if strings.TrimSpace(c.ExportFormat) == "" {
		c.ExportFormat = base.ExportFormat
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CITYPLAN_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("CITYPLAN_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LogUseCases = b
		}
	}
	if v := os.Getenv("CITYPLAN_CURRENCY"); v != "" {
		c.Currency = v
	}
	if v := os.Getenv("CITYPLAN_EXPORT_FORMAT"); v != "" {
		c.ExportFormat = v
	}
}

func (c *Config) validate() error {
	switch strings.ToLower(c.ExportFormat) {
	case "json", "yaml", "yml":
	default:
		return fmt.Errorf("export_format %q must be json or yaml", c.ExportFormat)
	}
	return nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
