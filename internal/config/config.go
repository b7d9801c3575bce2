// Package config loads the linmole configuration file and declares
// the built-in cleanup target tables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

const (
	dirName  = "linmole"
	fileName = "config.yaml"
)

// Config is the on-disk configuration. Absent fields keep their
// compiled-in defaults; an explicit zero overrides.
type Config struct {
	// Whitelist entries are merged into the protected-path whitelist,
	// same syntax as the whitelist file.
	Whitelist []string `yaml:"whitelist"`

	// ProjectPaths are the roots scanned for build artifacts.
	ProjectPaths []string `yaml:"project_paths"`

	// SkipRecentDays keeps artifacts younger than this many days out
	// of the purge default selection. Zero selects everything.
	SkipRecentDays int `yaml:"skip_recent_days"`

	// JournalMaxSize caps the systemd journal during optimize,
	// journalctl syntax ("100M", "1G").
	JournalMaxSize string `yaml:"journal_max_size"`
}

// Dir returns the linmole configuration directory.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, dirName)
}

// DefaultPath returns the config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), fileName)
}

// Default returns the compiled-in configuration.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		ProjectPaths: []string{
			filepath.Join(home, "Projects"),
			filepath.Join(home, "Development"),
			filepath.Join(home, "dev"),
			filepath.Join(home, "code"),
			filepath.Join(home, "GitHub"),
		},
		SkipRecentDays: 7,
		JournalMaxSize: "100M",
	}
}

// Load reads the config from its default location. A missing file is
// not an error; defaults apply.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom decodes a config file over the defaults, so partial files
// only override what they mention.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

var journalSizePattern = regexp.MustCompile(`^[0-9]+[KMGT]?$`)

func (c *Config) validate() error {
	if c.SkipRecentDays < 0 {
		return fmt.Errorf("skip_recent_days must not be negative, got %d", c.SkipRecentDays)
	}
	if c.JournalMaxSize != "" && !journalSizePattern.MatchString(c.JournalMaxSize) {
		return fmt.Errorf("journal_max_size %q is not a journalctl size (e.g. 100M)", c.JournalMaxSize)
	}
	return nil
}

// Save writes the config to its default location.
func (c *Config) Save() error {
	return c.SaveTo(DefaultPath())
}

// SaveTo writes the config as YAML, creating the directory if needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
