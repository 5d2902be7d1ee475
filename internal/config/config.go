// Package config loads the editor's configuration from TOML or JSON files,
// applies environment overrides, and watches the file for live reload.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of all recognized environment variables.
const EnvPrefix = "VELLUM_"

// Config is the root configuration.
type Config struct {
	Toolbar ToolbarConfig `toml:"toolbar" json:"toolbar"`
	Logging LoggingConfig `toml:"logging" json:"logging"`
}

// ToolbarConfig configures the toolbar view.
type ToolbarConfig struct {
	// Items is the ordered list of item names; "|" is a separator.
	Items []string `toml:"items" json:"items"`

	// GroupWhenFull selects the dynamic grouping behavior.
	GroupWhenFull bool `toml:"group_when_full" json:"group_when_full"`

	// Vertical lays the toolbar out as a column.
	Vertical bool `toml:"vertical" json:"vertical"`

	// Direction is "ltr" or "rtl".
	Direction string `toml:"direction" json:"direction"`
}

// LoggingConfig configures diagnostics output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" json:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Toolbar: ToolbarConfig{
			Items:         []string{"bold", "italic", "|", "link"},
			GroupWhenFull: true,
			Direction:     "ltr",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Validate checks field values. Unknown toolbar item names are not an
// error here; they are resolved (and skipped with a warning) when the
// toolbar is built.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Toolbar.Direction) {
	case "", "ltr", "rtl":
	default:
		return fmt.Errorf("%w: direction %q", ErrInvalidValue, c.Toolbar.Direction)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalidValue, c.Logging.Level)
	}
	return nil
}

// ApplyEnv overrides fields from VELLUM_-prefixed environment variables.
// Malformed boolean values are ignored.
func ApplyEnv(c *Config) {
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "TOOLBAR_ITEMS"); ok {
		items := strings.Split(v, ",")
		for i := range items {
			items[i] = strings.TrimSpace(items[i])
		}
		c.Toolbar.Items = items
	}
	if v, ok := os.LookupEnv(EnvPrefix + "TOOLBAR_GROUP"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Toolbar.GroupWhenFull = b
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "TOOLBAR_VERTICAL"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Toolbar.Vertical = b
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "TOOLBAR_DIRECTION"); ok {
		c.Toolbar.Direction = v
	}
}
