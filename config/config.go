// Package config loads viewer settings from a YAML file, a .env file and
// TILESCENE_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "TILESCENE_"

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	// Map is an embedded level name or a path to a map file on disk.
	Map          string        `yaml:"map"`
	AssetDir     string        `yaml:"asset_dir"`
	Width        int           `yaml:"width"`
	Height       int           `yaml:"height"`
	ScrollSpeed  float64       `yaml:"scroll_speed"`
	SortTilesets bool          `yaml:"sort_tilesets"`
	Watch        bool          `yaml:"watch"`
	Logging      LoggingConfig `yaml:"logging"`
}

func Default() Config {
	return Config{
		Map:          "demo.tmx",
		AssetDir:     "assets",
		Width:        640,
		Height:       480,
		ScrollSpeed:  5,
		SortTilesets: true,
		Watch:        true,
		Logging:      LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads path over the defaults and then applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadDotEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("config: load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from TILESCENE_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	num := func(name string, dst *int) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s=%q: %w", envPrefix, name, v, err))
				return
			}
			*dst = n
		}
	}
	flag := func(name string, dst *bool) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s=%q: %w", envPrefix, name, v, err))
				return
			}
			*dst = b
		}
	}

	str("MAP", &c.Map)
	str("ASSET_DIR", &c.AssetDir)
	num("WIDTH", &c.Width)
	num("HEIGHT", &c.Height)
	if v, ok := lookup(envPrefix + "SCROLL_SPEED"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %sSCROLL_SPEED=%q: %w", envPrefix, v, err))
		} else {
			c.ScrollSpeed = f
		}
	}
	flag("SORT_TILESETS", &c.SortTilesets)
	flag("WATCH", &c.Watch)
	str("LOG_LEVEL", &c.Logging.Level)
	str("LOG_FORMAT", &c.Logging.Format)
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	if c.Map == "" {
		return errors.New("config: map is required")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: invalid viewport %dx%d", c.Width, c.Height)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Logging.Format)
	}
	return nil
}
