package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilescene.yaml")
	data := []byte("map: levels/other.tmx\nwidth: 800\nscroll_speed: 2.5\nwatch: false\nlogging:\n  level: debug\n  format: json\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TILESCENE_HEIGHT", "600")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Map != "levels/other.tmx" || cfg.Width != 800 || cfg.Height != 600 || cfg.ScrollSpeed != 2.5 || cfg.Watch {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.AssetDir != "assets" || !cfg.SortTilesets {
		t.Fatalf("unset fields should keep defaults, got %+v", cfg)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("width: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TILESCENE_MAP":           "x.tmx",
		"TILESCENE_SCROLL_SPEED":  "0",
		"TILESCENE_SORT_TILESETS": "false",
		"TILESCENE_LOG_LEVEL":     "warn",
		"TILESCENE_WIDTH":         "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Map != "x.tmx" || cfg.ScrollSpeed != 0 || cfg.SortTilesets || cfg.Logging.Level != "warn" || cfg.Width != 640 {
		t.Fatalf("unexpected config %+v", cfg)
	}

	env["TILESCENE_WIDTH"] = "wide"
	env["TILESCENE_WATCH"] = "sometimes"
	if err := cfg.ApplyEnv(lookup); err == nil {
		t.Fatalf("expected errors for bad values")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		patch func(*Config)
		ok    bool
	}{
		{"defaults", func(*Config) {}, true},
		{"no_map", func(c *Config) { c.Map = "" }, false},
		{"zero_width", func(c *Config) { c.Width = 0 }, false},
		{"bad_format", func(c *Config) { c.Logging.Format = "xml" }, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.patch(&cfg)
			if err := cfg.Validate(); (err == nil) != c.ok {
				t.Fatalf("Validate() = %v, want ok=%v", err, c.ok)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("TILESCENE_TEST_DOTENV=loaded\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TILESCENE_TEST_DOTENV", "")
	os.Unsetenv("TILESCENE_TEST_DOTENV")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("TILESCENE_TEST_DOTENV"); got != "loaded" {
		t.Fatalf("expected variable from .env, got %q", got)
	}
}
