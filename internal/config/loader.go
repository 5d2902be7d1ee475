package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Load reads the configuration at path, chosen by extension (.toml or
// .json), applies environment overrides and validates the result. A
// missing file yields the defaults, not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults apply.
	case err != nil:
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			err = parseTOML(path, data, &cfg)
		case ".json":
			err = parseJSON(path, data, &cfg)
		default:
			err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
		if err != nil {
			return cfg, err
		}
	}

	ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseTOML(path string, data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

func parseJSON(path string, data []byte, cfg *Config) error {
	if !gjson.ValidBytes(data) {
		return &ParseError{Path: path, Message: "invalid JSON"}
	}
	if v := gjson.GetBytes(data, "toolbar.items"); v.Exists() {
		items := make([]string, 0, len(v.Array()))
		for _, it := range v.Array() {
			items = append(items, it.String())
		}
		cfg.Toolbar.Items = items
	}
	if v := gjson.GetBytes(data, "toolbar.group_when_full"); v.Exists() {
		cfg.Toolbar.GroupWhenFull = v.Bool()
	}
	if v := gjson.GetBytes(data, "toolbar.vertical"); v.Exists() {
		cfg.Toolbar.Vertical = v.Bool()
	}
	if v := gjson.GetBytes(data, "toolbar.direction"); v.Exists() {
		cfg.Toolbar.Direction = v.String()
	}
	if v := gjson.GetBytes(data, "logging.level"); v.Exists() {
		cfg.Logging.Level = v.String()
	}
	return nil
}

// WriteDefault writes the built-in configuration to path in the format
// chosen by extension. Parent directories are created as needed.
func WriteDefault(path string) error {
	cfg := Default()

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		data, err = toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding default config: %w", err)
		}
	case ".json":
		data, err = defaultJSON(cfg)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultJSON(cfg Config) ([]byte, error) {
	out := []byte("{}")
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		out, err = sjson.SetBytes(out, path, value)
	}
	set("toolbar.items", cfg.Toolbar.Items)
	set("toolbar.group_when_full", cfg.Toolbar.GroupWhenFull)
	set("toolbar.vertical", cfg.Toolbar.Vertical)
	set("toolbar.direction", cfg.Toolbar.Direction)
	set("logging.level", cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	return append(out, '\n'), nil
}
