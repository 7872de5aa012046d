package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/aretw0/matrixdeck/internal/adapters/file"
	"github.com/aretw0/matrixdeck/internal/adapters/redis"
	"github.com/aretw0/matrixdeck/internal/config"
	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/aretw0/matrixdeck/pkg/ports"
)

// RunOptions holds the command line overrides of a presentation.
// Zero values leave the configuration untouched.
type RunOptions struct {
	ConfigPath string
	Remote     string
	MCP        string
	Resume     bool
	Audio      bool
	LogFile    string
	LogLevel   string

	// Output receives the closing message once the terminal is restored. Defaults to stderr.
	Output io.Writer
}

func (o RunOptions) output() io.Writer {
	if o.Output == nil {
		return os.Stderr
	}
	return o.Output
}

// Apply overlays the flags on cfg.
func (o RunOptions) Apply(cfg *config.Config) {
	if o.Remote != "" {
		cfg.Remote.Addr = o.Remote
	}
	if o.MCP != "" {
		cfg.Remote.MCPAddr = o.MCP
	}
	if o.Audio {
		cfg.Audio.Enabled = true
	}
	if o.LogFile != "" {
		cfg.Log.File = o.LogFile
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
}

// Run presents deck full screen until the user quits or ctx is cancelled.
func Run(ctx context.Context, deck *domain.Deck, opts RunOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	opts.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, logFile, err := createLogger(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	var appOpts []AppOption
	if opts.Resume {
		store, closer, err := openBookmarkStore(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()
		appOpts = append(appOpts, WithBookmarks(store))
	}
	if cfg.Remote.Addr != "" {
		appOpts = append(appOpts, WithRemote())
	}
	if cfg.Remote.MCPAddr != "" {
		appOpts = append(appOpts, WithMCP())
	}

	snap, started, err := present(ctx, cfg, deck, logger, appOpts)
	if started {
		printSystemMessage(opts.output(), "stopped at slide %s", snap.Counter)
	}
	return err
}

// present owns the terminal for the length of the presentation and returns where it ended.
// started is false when the presentation failed before showing the first slide.
func present(ctx context.Context, cfg *config.Config, deck *domain.Deck, logger *slog.Logger, appOpts []AppOption) (snap domain.Snapshot, started bool, err error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()

	app, err := NewApp(cfg, deck, screen, logger, appOpts...)
	if err != nil {
		return domain.Snapshot{}, false, err
	}

	logger.Info("presentation started", "deck", deck.Meta.Title, "slides", deck.Total(), "remote", cfg.Remote.Addr, "mcp", cfg.Remote.MCPAddr)
	err = app.Run(ctx)
	logger.Info("presentation ended", "error", err)
	snap, started = app.Snapshot()
	return snap, started, err
}

// openBookmarkStore returns the configured store and whatever must be closed with it.
func openBookmarkStore(cfg *config.Config) (ports.BookmarkStore, io.Closer, error) {
	switch cfg.Bookmark.Backend {
	case config.BookmarkRedis:
		s := redis.New(cfg.Bookmark.RedisAddr, "", 0)
		return s, s, nil
	case config.BookmarkFile, "":
		return file.New(cfg.Bookmark.Dir), io.NopCloser(nil), nil
	}
	return nil, nil, fmt.Errorf("unknown bookmark backend %q", cfg.Bookmark.Backend)
}
