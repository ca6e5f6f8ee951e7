// Package config handles configuration loading and validation for the todo
// app. Files may be YAML or TOML, chosen by extension.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/wyw/internal/headline"
	"github.com/idilsaglam/wyw/internal/reveal"
	"github.com/idilsaglam/wyw/internal/store"
	"github.com/idilsaglam/wyw/internal/todo"
)

const appName = "wyw"

// Themes accepted by the theme setting.
var Themes = []string{"classic", "neon", "mono"}

// Config holds the application configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage" toml:"storage"`
	Page     PageConfig     `yaml:"page" toml:"page"`
	Reveal   RevealConfig   `yaml:"reveal" toml:"reveal"`
	Headline HeadlineConfig `yaml:"headline" toml:"headline"`
	Theme    string         `yaml:"theme" toml:"theme"`
	DataDir  string         `yaml:"-" toml:"-"` // set by caller, not from config file
}

// StorageConfig selects the slot the list is persisted under.
type StorageConfig struct {
	Key string `yaml:"key" toml:"key"`
}

// PageConfig sizes the visible-count cursor.
type PageConfig struct {
	Initial   int `yaml:"initial" toml:"initial"`
	Increment int `yaml:"increment" toml:"increment"`
}

// RevealConfig tunes scroll-triggered loading.
type RevealConfig struct {
	Threshold int `yaml:"threshold" toml:"threshold"`
}

// HeadlineConfig configures the rotating headline.
type HeadlineConfig struct {
	Labels   []string      `yaml:"labels" toml:"labels"`
	Interval time.Duration `yaml:"interval" toml:"interval"`
	Suffix   string        `yaml:"suffix" toml:"suffix"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{Key: store.DefaultKey},
		Page: PageConfig{
			Initial:   todo.DefaultInitialVisible,
			Increment: todo.DefaultVisibleStep,
		},
		Reveal: RevealConfig{Threshold: reveal.DefaultThreshold},
		Headline: HeadlineConfig{
			Labels:   append([]string(nil), headline.DefaultLabels...),
			Interval: headline.DefaultInterval,
			Suffix:   headline.DefaultSuffix,
		},
		Theme: "classic",
	}
}

// DefaultDataDir returns $XDG_DATA_HOME/wyw, falling back to ~/.local/share/wyw.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appName)
	}
	return filepath.Join(home, ".local", "share", appName)
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/wyw/config.yaml, falling back to
// ~/.config/wyw/config.yaml.
func DefaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.yaml")
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := decode(configPath, data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	case ".yaml", ".yml", "":
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// applyDefaults fills settings a file left empty.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Key == "" {
		c.Storage.Key = defaults.Storage.Key
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Headline.Labels == nil {
		c.Headline.Labels = defaults.Headline.Labels
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.DataDir == "" {
		errs = append(errs, fmt.Errorf("data directory cannot be empty"))
	}
	if c.Page.Initial < 1 {
		errs = append(errs, fmt.Errorf("page.initial must be at least 1"))
	}
	if c.Page.Increment < 1 {
		errs = append(errs, fmt.Errorf("page.increment must be at least 1"))
	}
	if c.Reveal.Threshold < 0 {
		errs = append(errs, fmt.Errorf("reveal.threshold cannot be negative"))
	}
	if len(c.Headline.Labels) == 0 {
		errs = append(errs, fmt.Errorf("headline.labels cannot be empty"))
	}
	if c.Headline.Interval <= 0 {
		errs = append(errs, fmt.Errorf("headline.interval must be positive"))
	}
	if !isValidTheme(c.Theme) {
		errs = append(errs, fmt.Errorf("unknown theme %q (want one of %s)", c.Theme, strings.Join(Themes, ", ")))
	}

	return errors.Join(errs...)
}

func isValidTheme(name string) bool {
	for _, t := range Themes {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}
