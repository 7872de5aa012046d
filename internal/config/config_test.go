package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/matrixdeck/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, 200*time.Millisecond, cfg.Timing.Settle)
	assert.Equal(t, 100*time.Millisecond, cfg.Timing.Stagger)
	assert.Equal(t, 250*time.Millisecond, cfg.Timing.ResizeDebounce)
	assert.Equal(t, 5*time.Second, cfg.Rain.Lifetime)
	assert.Equal(t, config.BookmarkFile, cfg.Bookmark.Backend)
	assert.False(t, cfg.Audio.Enabled)
	assert.Empty(t, cfg.Remote.Addr)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrixdeck.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
timing:
  settle: 300ms
rain:
  column_width: 20
  container_opacity: 0.5
audio:
  enabled: true
remote:
  addr: ":9090"
`), 0644))

	t.Setenv("MATRIXDECK_TIMING__STAGGER", "150ms")
	t.Setenv("MATRIXDECK_LOG__LEVEL", "debug")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 300*time.Millisecond, cfg.Timing.Settle)
	assert.Equal(t, 150*time.Millisecond, cfg.Timing.Stagger)
	assert.Equal(t, 20, cfg.Rain.ColumnWidth)
	assert.InDelta(t, 0.5, cfg.Rain.ContainerOpacity, 1e-9)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, ":9090", cfg.Remote.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 500*time.Millisecond, cfg.Rain.SpawnMin, "untouched keys keep defaults")

	rain := cfg.RainEffect()
	assert.Equal(t, 20, rain.ColumnWidth)
	assert.Equal(t, cfg.Rain.Charset, rain.Charset)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("timing: [unclosed"), 0644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*config.Config){
		"column width":    func(c *config.Config) { c.Rain.ColumnWidth = 0 },
		"spawn range":     func(c *config.Config) { c.Rain.SpawnMax = c.Rain.SpawnMin - 1 },
		"fall range":      func(c *config.Config) { c.Rain.FallMin = 0 },
		"opacity":         func(c *config.Config) { c.Rain.OpacityMax = 1.5 },
		"container":       func(c *config.Config) { c.Rain.ContainerOpacity = -0.1 },
		"negative settle": func(c *config.Config) { c.Timing.Settle = -time.Second },
		"frame":           func(c *config.Config) { c.Timing.Frame = 0 },
		"volume":          func(c *config.Config) { c.Audio.Volume = -1 },
		"backend":         func(c *config.Config) { c.Bookmark.Backend = "s3" },
		"redis addr":      func(c *config.Config) { c.Bookmark.Backend = config.BookmarkRedis },
		"log level":       func(c *config.Config) { c.Log.Level = "loud" },
	}

	require.NoError(t, config.DefaultConfig().Validate())
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yml")
	cfg := config.DefaultConfig()
	cfg.Remote.Addr = ":7000"
	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", loaded.Remote.Addr)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, config.DefaultConfig().Write(&buf))

	out := buf.String()
	assert.Contains(t, out, "timing:\n")
	assert.Contains(t, out, "  column_width: ")
	assert.Contains(t, out, "backend: file")
}
