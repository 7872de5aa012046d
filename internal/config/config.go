package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/aretw0/matrixdeck/internal/effects"
	"github.com/aretw0/matrixdeck/internal/logging"
)

// EnvPrefix prefixes environment overrides. A double underscore separates levels:
// MATRIXDECK_RAIN__COLUMN_WIDTH sets rain.column_width.
const EnvPrefix = "MATRIXDECK_"

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "matrixdeck.yml"

// DefaultConfig returns the compiled-in defaults.
func DefaultConfig() *Config {
	rain := effects.DefaultRainConfig()
	return &Config{
		Timing: TimingConfig{
			Settle:         200 * time.Millisecond,
			Stagger:        100 * time.Millisecond,
			ResizeDebounce: 250 * time.Millisecond,
			Frame:          33 * time.Millisecond,
		},
		Rain: RainConfig{
			ColumnWidth:      rain.ColumnWidth,
			SpawnMin:         rain.SpawnMin,
			SpawnMax:         rain.SpawnMax,
			Lifetime:         rain.Lifetime,
			FallMin:          rain.FallMin,
			FallMax:          rain.FallMax,
			DelayMax:         rain.DelayMax,
			OpacityMin:       rain.OpacityMin,
			OpacityMax:       rain.OpacityMax,
			ContainerOpacity: 0.35,
			Charset:          rain.Charset,
		},
		Audio: AudioConfig{Volume: 1},
		Bookmark: BookmarkConfig{
			Backend: BookmarkFile,
			Dir:     defaultBookmarkDir(),
		},
		Log: LogConfig{Level: "info"},
	}
}

func defaultBookmarkDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "matrixdeck", "bookmarks")
	}
	return ".matrixdeck"
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (MATRIXDECK_*). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Write encodes the configuration as YAML to w.
func (c *Config) Write(w io.Writer) error {
	enc := yamlv3.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	return enc.Close()
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validBackends = map[BookmarkBackend]bool{
	BookmarkFile:  true,
	BookmarkRedis: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	t := c.Timing
	if t.Settle < 0 || t.Stagger < 0 || t.ResizeDebounce < 0 {
		return fmt.Errorf("timing delays must be non-negative")
	}
	if t.Frame <= 0 {
		return fmt.Errorf("timing.frame must be positive")
	}

	r := c.Rain
	if r.ColumnWidth <= 0 {
		return fmt.Errorf("rain.column_width must be positive")
	}
	if r.SpawnMin <= 0 || r.SpawnMax < r.SpawnMin {
		return fmt.Errorf("invalid rain spawn range %s..%s", r.SpawnMin, r.SpawnMax)
	}
	if r.FallMin <= 0 || r.FallMax < r.FallMin {
		return fmt.Errorf("invalid rain fall range %s..%s", r.FallMin, r.FallMax)
	}
	if r.Lifetime <= 0 {
		return fmt.Errorf("rain.lifetime must be positive")
	}
	if r.OpacityMin < 0 || r.OpacityMax > 1 || r.OpacityMax < r.OpacityMin {
		return fmt.Errorf("invalid rain opacity range %.2f..%.2f", r.OpacityMin, r.OpacityMax)
	}
	if r.ContainerOpacity < 0 || r.ContainerOpacity > 1 {
		return fmt.Errorf("rain.container_opacity must be within [0, 1]")
	}

	if c.Audio.Volume < 0 {
		return fmt.Errorf("audio.volume must be non-negative")
	}

	if !validBackends[c.Bookmark.Backend] {
		return fmt.Errorf("invalid bookmark.backend %q: must be one of file, redis", c.Bookmark.Backend)
	}
	if c.Bookmark.Backend == BookmarkRedis && c.Bookmark.RedisAddr == "" {
		return fmt.Errorf("bookmark.redis_addr is required for the redis backend")
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// RainEffect converts the rain section into the effect's configuration.
func (c *Config) RainEffect() effects.RainConfig {
	r := c.Rain
	return effects.RainConfig{
		ColumnWidth: r.ColumnWidth,
		SpawnMin:    r.SpawnMin,
		SpawnMax:    r.SpawnMax,
		Lifetime:    r.Lifetime,
		FallMin:     r.FallMin,
		FallMax:     r.FallMax,
		DelayMax:    r.DelayMax,
		OpacityMin:  r.OpacityMin,
		OpacityMax:  r.OpacityMax,
		Charset:     r.Charset,
	}
}
