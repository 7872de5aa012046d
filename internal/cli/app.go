package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/matrixdeck/internal/audio"
	"github.com/aretw0/matrixdeck/internal/bookmark"
	"github.com/aretw0/matrixdeck/internal/clock"
	"github.com/aretw0/matrixdeck/internal/config"
	"github.com/aretw0/matrixdeck/internal/effects"
	"github.com/aretw0/matrixdeck/internal/input"
	"github.com/aretw0/matrixdeck/internal/presentation/tui"
	"github.com/aretw0/matrixdeck/internal/runtime"
	"github.com/aretw0/matrixdeck/internal/scene"
	httpAdapter "github.com/aretw0/matrixdeck/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/matrixdeck/pkg/adapters/mcp"
	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/aretw0/matrixdeck/pkg/observability"
	"github.com/aretw0/matrixdeck/pkg/persistence/middleware"
	"github.com/aretw0/matrixdeck/pkg/ports"
)

const (
	loopBuffer      = 256
	bookmarkTimeout = 2 * time.Second
)

// App is one full-screen presentation: the event loop, the scene and its view,
// the presenter and every input, effect and side channel wired around it.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	deck   *domain.Deck
	screen tcell.Screen

	loop       *clock.Loop
	sched      *clock.LoopScheduler
	scene      *scene.Scene
	view       *tui.View
	title      *runtime.TitleEffect
	presenter  *runtime.Presenter
	dispatcher *input.Dispatcher
	keymap     input.Keymap
	ripple     *effects.Ripple
	hover      *effects.Hover
	resize     *input.Debouncer
	player     *audio.Player
	registry   *prometheus.Registry
	server     *httpAdapter.Server
	mcp        *mcpAdapter.Server
	tracker    *bookmark.Tracker

	remote   bool
	withMCP  bool
	pressed  bool
	started  bool
	quitOnce sync.Once
	quit     chan struct{}
}

// AppOption configures an App.
type AppOption func(*App)

// WithBookmarks resumes from and records into store.
func WithBookmarks(store ports.BookmarkStore) AppOption {
	return func(a *App) {
		store = middleware.Chain(store,
			middleware.NewMetricsMiddleware(a.registry),
			middleware.NewTimeoutMiddleware(bookmarkTimeout),
		)
		a.tracker = bookmark.NewTracker(store, bookmark.DeckID(a.deck), a.logger)
	}
}

// WithRemote serves the remote control API on cfg.Remote.Addr.
func WithRemote() AppOption {
	return func(a *App) {
		a.remote = true
	}
}

// WithMCP serves the navigation tools to MCP clients on cfg.Remote.MCPAddr.
func WithMCP() AppOption {
	return func(a *App) {
		a.withMCP = true
	}
}

// NewApp builds the whole presenter on an initialized screen. Nothing runs until Run.
func NewApp(cfg *config.Config, deck *domain.Deck, screen tcell.Screen, logger *slog.Logger, opts ...AppOption) (*App, error) {
	a := &App{
		cfg:      cfg,
		logger:   logger,
		deck:     deck,
		screen:   screen,
		loop:     clock.NewLoop(loopBuffer, clock.WithLoopLogger(logger)),
		scene:    scene.New(),
		registry: prometheus.NewRegistry(),
		quit:     make(chan struct{}),
	}
	a.sched = clock.NewScheduler(a.loop)
	for _, opt := range opts {
		opt(a)
	}

	theme, ok := tui.ThemeByName(deck.Meta.Theme)
	if !ok && deck.Meta.Theme != "" {
		logger.Warn("unknown theme, using default", "theme", deck.Meta.Theme)
	}
	a.view = tui.NewView(screen, a.scene, theme)

	scene.Mount(a.scene, deck, scene.FullChrome())

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6d61747269786465))
	if id, ok := a.scene.Lookup(scene.NameRain); ok {
		rain := effects.NewRain(a.scene, a.sched, rng, id, cfg.RainEffect())
		a.title = runtime.NewTitleEffect(a.scene, rain, id, cfg.Rain.ContainerOpacity)
	}

	a.player = audio.NewPlayer(audio.WithLogger(logger), audio.WithVolume(cfg.Audio.Volume))
	if cfg.Audio.Enabled {
		a.player.Enable()
	}

	metrics := observability.NewMetrics(a.registry)
	hooks := []domain.LifecycleHooks{metrics.Hooks(), createDebugHooks(logger)}
	if a.tracker != nil {
		hooks = append(hooks, a.tracker.Hooks())
	}
	if a.remote {
		hooks = append(hooks, domain.LifecycleHooks{
			OnSlideEnter: func(context.Context, *domain.SlideEvent) {
				a.server.Publish(a.presenter.Snapshot())
			},
		})
	}

	presenterOpts := []runtime.Option{
		runtime.WithLogger(logger),
		runtime.WithHooks(domain.MergeHooks(hooks...)),
		runtime.WithCuePlayer(a.player),
		runtime.WithTiming(cfg.Timing.Settle, cfg.Timing.Stagger),
		runtime.WithGlitch(effects.NewGlitch(a.scene, a.sched, rng, effects.DefaultGlitchConfig())),
		runtime.WithTypewriter(effects.NewTypewriter(a.scene, a.sched, effects.DefaultTypewriterSpeed)),
		runtime.WithSessionID(uuid.NewString()),
	}
	if a.title != nil {
		presenterOpts = append(presenterOpts, runtime.WithTitleEffect(a.title))
	}
	p, err := runtime.NewPresenter(deck, a.scene, a.sched, presenterOpts...)
	if err != nil {
		return nil, err
	}
	a.presenter = p
	if a.remote {
		a.server = httpAdapter.NewServer(
			runtime.NewSession(a.loop, p),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithGatherer(a.registry),
			httpAdapter.WithAllowAllOrigins(cfg.Remote.AllowAllOrigins),
		)
	}
	if a.withMCP {
		a.mcp = mcpAdapter.NewServer(runtime.NewSession(a.loop, p), mcpAdapter.WithLogger(logger))
	}

	a.dispatcher = input.NewDispatcher(p, logger)
	a.dispatcher.OnToggleAudio = func() {
		on := a.player.Toggle()
		logger.Info("audio toggled", "enabled", on)
		a.updateStatus()
	}
	a.dispatcher.OnQuit = a.Quit

	a.ripple = effects.NewRipple(a.scene, a.sched, effects.DefaultRippleDuration)
	a.hover = effects.NewHover(a.scene)
	a.resize = input.NewDebouncer(a.sched, cfg.Timing.ResizeDebounce)

	return a, nil
}

// Snapshot returns the presenter state and whether the presentation ever started.
// Call it only before Run or after it returns, when the loop no longer owns the presenter.
func (a *App) Snapshot() (domain.Snapshot, bool) {
	return a.presenter.Snapshot(), a.started
}

// Quit ends Run. It is safe to call from any goroutine, more than once.
func (a *App) Quit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// Run presents until ctx is cancelled or the user quits.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resume := 0
	if a.tracker != nil {
		if pos, ok := a.tracker.Resume(ctx); ok {
			resume = pos
		}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = a.loop.Run(ctx)
	}()

	if err := a.loop.Call(ctx, func() { a.start(resume) }); err != nil {
		cancel()
		wg.Wait()
		return err
	}

	go a.pump()

	if a.tracker != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.tracker.Run(ctx)
		}()
	}

	serveErr := make(chan error, 2)
	serve := func(name string, fn func(context.Context, string) error, addr string) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx, addr); err != nil {
				serveErr <- fmt.Errorf("%s: %w", name, err)
			}
		}()
	}
	if a.server != nil {
		serve("remote control", a.server.Serve, a.cfg.Remote.Addr)
	}
	if a.mcp != nil {
		serve("mcp", a.mcp.Serve, a.cfg.Remote.MCPAddr)
	}

	var err error
	select {
	case <-ctx.Done():
	case <-a.quit:
	case err = <-serveErr:
		a.logger.Error("server stopped", "error", err)
	}
	cancel()
	wg.Wait()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// start runs on the loop.
func (a *App) start(resume int) {
	w, _ := a.screen.Size()
	if a.title != nil {
		a.title.Rebuild(w)
	}
	a.presenter.Start()
	a.started = true
	if resume > 1 {
		if !a.presenter.JumpTo(resume) {
			a.logger.Warn("bookmark out of range, starting at the title", "position", resume)
		}
	}
	a.updateStatus()
	a.sched.Every(a.cfg.Timing.Frame, a.draw)
	a.draw()
}

func (a *App) draw() {
	a.view.Draw(a.sched.Now())
}

// pump forwards terminal events to the loop until the screen is finalized.
func (a *App) pump() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		if !a.loop.Post(func() { a.handle(ev) }) {
			return
		}
	}
}

// handle runs on the loop.
func (a *App) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		key, ok := tui.KeyOf(ev)
		if !ok {
			return
		}
		action, ok := a.keymap.Resolve(key)
		if !ok {
			return
		}
		a.dispatcher.Dispatch(action)
		a.updateStatus()

	case *tcell.EventMouse:
		a.pointer(tui.PointerOf(ev))

	case *tcell.EventResize:
		a.screen.Sync()
		w, _ := ev.Size()
		a.resize.Trigger(func() { a.relayout(w) })

	case *tcell.EventFocus:
		if a.title != nil {
			a.title.Pause(!ev.Focused)
		}
	}
}

// relayout rebuilds what depends on the screen width once a resize settles.
func (a *App) relayout(width int) {
	if a.title != nil {
		a.title.Rebuild(width)
	}
	a.logger.Debug("layout rebuilt", "width", width)
}

func (a *App) pointer(p tui.Pointer) {
	id, hit := a.view.HitTest(p.At)
	a.hover.Move(id)

	click := p.Pressed && !a.pressed
	a.pressed = p.Pressed
	if !click || !hit {
		return
	}

	ctrl := a.control(id)
	if ctrl == input.ControlNone {
		return
	}
	n, ok := a.scene.Get(id)
	if !ok {
		return
	}
	if n.Enabled {
		if bounds, ok := a.view.Bounds(id); ok {
			a.ripple.Spawn(id, bounds, p.At)
		}
	}
	a.dispatcher.Click(ctrl, n.Enabled)
}

func (a *App) control(id ports.NodeID) input.Control {
	switch {
	case a.is(id, scene.NamePrev):
		return input.ControlPrev
	case a.is(id, scene.NameNext):
		return input.ControlNext
	}
	return input.ControlNone
}

func (a *App) is(id ports.NodeID, name string) bool {
	n, ok := a.scene.Lookup(name)
	return ok && n == id
}

func (a *App) updateStatus() {
	id, ok := a.scene.Lookup(scene.NameStatus)
	if !ok {
		return
	}
	var parts []string
	if pending := a.keymap.Pending(); pending != "" {
		parts = append(parts, "go to "+pending+"_")
	}
	if a.player.Enabled() {
		parts = append(parts, "♪")
	}
	a.scene.SetText(id, strings.Join(parts, "  "))
}
