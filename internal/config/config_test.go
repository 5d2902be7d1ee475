package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg.Toolbar.GroupWhenFull != want.Toolbar.GroupWhenFull {
		t.Error("missing file should yield defaults")
	}
	if len(cfg.Toolbar.Items) != len(want.Toolbar.Items) {
		t.Errorf("items = %v, want %v", cfg.Toolbar.Items, want.Toolbar.Items)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vellum.toml")
	writeFile(t, path, `
[toolbar]
items = ["bold", "|", "link"]
group_when_full = false
direction = "rtl"

[logging]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Toolbar.Items) != 3 || cfg.Toolbar.Items[1] != "|" {
		t.Errorf("items = %v", cfg.Toolbar.Items)
	}
	if cfg.Toolbar.GroupWhenFull {
		t.Error("group_when_full should be false")
	}
	if cfg.Toolbar.Direction != "rtl" {
		t.Errorf("direction = %q, want rtl", cfg.Toolbar.Direction)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vellum.json")
	writeFile(t, path, `{
  "toolbar": {"items": ["bold", "italic"], "vertical": true},
  "logging": {"level": "warn"}
}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Toolbar.Items) != 2 || cfg.Toolbar.Items[0] != "bold" {
		t.Errorf("items = %v", cfg.Toolbar.Items)
	}
	if !cfg.Toolbar.Vertical {
		t.Error("vertical should be true")
	}
	// Fields absent from the file keep their defaults.
	if !cfg.Toolbar.GroupWhenFull {
		t.Error("group_when_full should default to true")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vellum.toml")
	writeFile(t, path, "[toolbar\nitems=")

	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if perr.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", perr.Path, path)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vellum.json")
	writeFile(t, path, `{"toolbar": `)

	var perr *ParseError
	if _, err := Load(path); !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vellum.yaml")
	writeFile(t, path, "toolbar:")

	if _, err := Load(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadInvalidDirection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vellum.toml")
	writeFile(t, path, "[toolbar]\ndirection = \"sideways\"\n")

	if _, err := Load(path); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("err = %v, want ErrInvalidValue", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VELLUM_LOG_LEVEL", "error")
	t.Setenv("VELLUM_TOOLBAR_ITEMS", "bold, link")
	t.Setenv("VELLUM_TOOLBAR_GROUP", "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("level = %q, want error", cfg.Logging.Level)
	}
	if len(cfg.Toolbar.Items) != 2 || cfg.Toolbar.Items[1] != "link" {
		t.Errorf("items = %v, want [bold link]", cfg.Toolbar.Items)
	}
	if cfg.Toolbar.GroupWhenFull {
		t.Error("group override should be false")
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	for _, name := range []string{"vellum.toml", "vellum.json"} {
		path := filepath.Join(t.TempDir(), name)
		if err := WriteDefault(path); err != nil {
			t.Fatalf("WriteDefault(%s): %v", name, err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		want := Default()
		if cfg.Toolbar.GroupWhenFull != want.Toolbar.GroupWhenFull {
			t.Errorf("%s: group_when_full mismatch", name)
		}
		if len(cfg.Toolbar.Items) != len(want.Toolbar.Items) {
			t.Errorf("%s: items = %v, want %v", name, cfg.Toolbar.Items, want.Toolbar.Items)
		}
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vellum.toml")
	writeFile(t, path, "[logging]\nlevel = \"info\"\n")

	reloaded := make(chan Config, 1)
	w, err := NewWatcher(path, 20*time.Millisecond, nil, func(cfg Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	writeFile(t, path, "[logging]\nlevel = \"debug\"\n")

	select {
	case cfg := <-reloaded:
		if cfg.Logging.Level != "debug" {
			t.Errorf("reloaded level = %q, want debug", cfg.Logging.Level)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vellum.toml")
	writeFile(t, path, "[logging]\nlevel = \"info\"\n")

	reloaded := make(chan struct{}, 1)
	w, err := NewWatcher(path, 20*time.Millisecond, nil, func(Config) {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	writeFile(t, filepath.Join(dir, "other.txt"), "noise")

	select {
	case <-reloaded:
		t.Error("unrelated file change triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}
}
