// Package config handles configuration loading and validation for taskdock.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Storage backend names.
const (
	StorageJSONFile = "jsonfile"
	StorageSQLite   = "sqlite"
)

// Defaults for timer-driven behavior. Invalid configured values fall back to
// these rather than failing the load.
const (
	DefaultAutoDeleteDelayMs = 1500
	DefaultAutoDeleteFadeMs  = 750
)

// Config holds the application configuration.
type Config struct {
	// AutoDeleteCompleted enables the delete-after-completion timer.
	AutoDeleteCompleted bool `yaml:"auto_delete_completed"`
	// AutoDeleteDelayMs is the wait after completion before the fade cue.
	AutoDeleteDelayMs int `yaml:"auto_delete_delay_ms"`
	// AutoDeleteFadeMs is the fade window before the actual deletion.
	AutoDeleteFadeMs int `yaml:"auto_delete_fade_ms"`
	// ConfirmDestructive asks for confirmation before clearing a scope
	// with more than one item.
	ConfirmDestructive bool `yaml:"confirm_destructive"`
	// Storage selects the persistence backend: jsonfile or sqlite.
	Storage string `yaml:"storage"`
	// IgnoreFolders lists glob patterns for workspace folders that are
	// never offered as todo scopes.
	IgnoreFolders []string `yaml:"ignore_folders"`

	// DataDir is set by the caller, not from the config file.
	DataDir string `yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		AutoDeleteCompleted: true,
		AutoDeleteDelayMs:   DefaultAutoDeleteDelayMs,
		AutoDeleteFadeMs:    DefaultAutoDeleteFadeMs,
		ConfirmDestructive:  true,
		Storage:             StorageJSONFile,
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the
// provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults replaces out-of-range values. Timer durations must be
// positive; anything else silently falls back to the default.
func (c *Config) applyDefaults() {
	if c.AutoDeleteDelayMs <= 0 {
		c.AutoDeleteDelayMs = DefaultAutoDeleteDelayMs
	}
	if c.AutoDeleteFadeMs <= 0 {
		c.AutoDeleteFadeMs = DefaultAutoDeleteFadeMs
	}
	if c.Storage == "" {
		c.Storage = StorageJSONFile
	}
}

// AutoDeleteDelay returns the completion-to-fade wait as a duration.
func (c *Config) AutoDeleteDelay() time.Duration {
	return time.Duration(c.AutoDeleteDelayMs) * time.Millisecond
}

// AutoDeleteFade returns the fade window as a duration.
func (c *Config) AutoDeleteFade() time.Duration {
	return time.Duration(c.AutoDeleteFadeMs) * time.Millisecond
}

// IsIgnoredFolder reports whether the workspace folder matches any of the
// configured ignore globs.
func (c *Config) IsIgnoredFolder(folder string) bool {
	for _, pattern := range c.IgnoreFolders {
		if ok, err := doublestar.Match(pattern, folder); err == nil && ok {
			return true
		}
	}
	return false
}
