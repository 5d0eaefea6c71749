// Package config loads the editor configuration from a TOML file and
// watches it for changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the user-tunable settings.
type Config struct {
	// DarkMode selects the dark palette at startup. The session
	// snapshot's theme choice, when present, wins over this.
	DarkMode bool `toml:"dark_mode"`

	// WordWrap is the default word-wrap state for new documents.
	WordWrap bool `toml:"word_wrap"`

	// TabWidth is the number of columns a tab character occupies.
	TabWidth int `toml:"tab_width"`

	// LargeFileThreshold is the size in bytes above which documents open
	// in large-file mode.
	LargeFileThreshold int64 `toml:"large_file_threshold"`

	// CheckpointSeconds is the interval between periodic session
	// snapshots. Zero disables periodic checkpoints; the snapshot is
	// still written on exit.
	CheckpointSeconds int `toml:"checkpoint_seconds"`

	// LanguagesFile points to an optional YAML file of extension to
	// language-name overrides for the status bar.
	LanguagesFile string `toml:"languages_file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LogFile is where logs go. Empty means stderr.
	LogFile string `toml:"log_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TabWidth:           4,
		LargeFileThreshold: 50 * 1024 * 1024,
		CheckpointSeconds:  30,
		LogLevel:           "info",
	}
}

// Load reads the configuration at path, layered over the defaults. A
// missing file is not an error; malformed TOML or out-of-range values
// are.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.TabWidth < 1 || c.TabWidth > 16 {
		return fmt.Errorf("tab_width %d out of range [1, 16]", c.TabWidth)
	}
	if c.LargeFileThreshold < 0 {
		return errors.New("large_file_threshold must not be negative")
	}
	if c.CheckpointSeconds < 0 {
		return errors.New("checkpoint_seconds must not be negative")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

// DefaultPath returns the conventional config file location, under the
// user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "rivet", "config.toml"), nil
}

// DefaultSessionPath returns the conventional session snapshot
// location, next to the config file.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "rivet", "session.json"), nil
}
