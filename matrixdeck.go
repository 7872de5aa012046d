package matrixdeck

import (
	"context"
	_ "embed"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/aretw0/matrixdeck/internal/clock"
	"github.com/aretw0/matrixdeck/internal/effects"
	"github.com/aretw0/matrixdeck/internal/logging"
	"github.com/aretw0/matrixdeck/internal/runtime"
	"github.com/aretw0/matrixdeck/internal/scene"
	"github.com/aretw0/matrixdeck/pkg/adapters/deckfile"
	"github.com/aretw0/matrixdeck/pkg/domain"
)

//go:embed VERSION
var version string

// Version is the released version of matrixdeck.
var Version = strings.TrimSpace(version)

//go:embed decks/matrix.md
var sampleDeck []byte

// SampleDeckName is the source name reported for the built-in deck.
const SampleDeckName = "matrix.md"

// SampleDeck parses the deck shipped with the binary.
func SampleDeck() (*domain.Deck, error) {
	return deckfile.Parse(SampleDeckName, sampleDeck)
}

// Load reads a Markdown or YAML deck from disk.
func Load(ctx context.Context, path string) (*domain.Deck, error) {
	return deckfile.NewLoader().Load(ctx, path)
}

// DefaultRainWidth is the virtual width the title effect lays its columns over
// when a Presentation has no screen.
const DefaultRainWidth = 80

// Presentation drives a deck without a terminal. Time only moves when Elapse
// is called, which makes it suitable for tests and for embedding the
// navigation rules in another front end.
//
// A Presentation is not safe for concurrent use.
type Presentation struct {
	scene     *scene.Scene
	clock     *clock.Manual
	presenter *runtime.Presenter
	title     *runtime.TitleEffect

	hooks  domain.LifecycleHooks
	logger *slog.Logger
	width  int
	seed   uint64
	start  time.Time
}

// Option defines a functional option for configuring a Presentation.
type Option func(*Presentation)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Presentation) {
		p.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Presentation) {
		p.logger = logger
	}
}

// WithWidth sets the width the title effect is laid out for.
func WithWidth(width int) Option {
	return func(p *Presentation) {
		p.width = width
	}
}

// WithSeed fixes the random source of the effects.
func WithSeed(seed uint64) Option {
	return func(p *Presentation) {
		p.seed = seed
	}
}

// WithStartTime sets the instant the virtual clock starts at.
func WithStartTime(t time.Time) Option {
	return func(p *Presentation) {
		p.start = t
	}
}

// New builds a headless presentation of deck. It is not started.
func New(deck *domain.Deck, opts ...Option) (*Presentation, error) {
	p := &Presentation{
		scene:  scene.New(),
		logger: logging.NewNop(),
		width:  DefaultRainWidth,
		seed:   1,
		start:  time.Unix(0, 0).UTC(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.clock = clock.NewManual(p.start)

	scene.Mount(p.scene, deck, scene.FullChrome())

	rng := rand.New(rand.NewPCG(p.seed, p.seed))
	runtimeOpts := []runtime.Option{
		runtime.WithLogger(p.logger),
		runtime.WithHooks(p.hooks),
		runtime.WithGlitch(effects.NewGlitch(p.scene, p.clock, rng, effects.DefaultGlitchConfig())),
		runtime.WithTypewriter(effects.NewTypewriter(p.scene, p.clock, effects.DefaultTypewriterSpeed)),
	}
	if id, ok := p.scene.Lookup(scene.NameRain); ok {
		rain := effects.NewRain(p.scene, p.clock, rng, id, effects.DefaultRainConfig())
		rain.Rebuild(p.width)
		p.title = runtime.NewTitleEffect(p.scene, rain, id, 0)
		runtimeOpts = append(runtimeOpts, runtime.WithTitleEffect(p.title))
	}

	presenter, err := runtime.NewPresenter(deck, p.scene, p.clock, runtimeOpts...)
	if err != nil {
		return nil, err
	}
	p.presenter = presenter
	return p, nil
}

// Start shows slide 1.
func (p *Presentation) Start() {
	p.presenter.Start()
}

// Advance moves forward one slide. It returns false at the last slide.
func (p *Presentation) Advance() bool {
	return p.presenter.Advance()
}

// Retreat moves back one slide. It returns false at slide 1.
func (p *Presentation) Retreat() bool {
	return p.presenter.Retreat()
}

// JumpTo moves to slide n, ignoring positions outside the deck.
func (p *Presentation) JumpTo(n int) bool {
	return p.presenter.JumpTo(n)
}

// GoTo moves to slide n or returns *domain.InvalidSlideIndexError.
func (p *Presentation) GoTo(n int) error {
	return p.presenter.GoTo(n)
}

// Position returns the current 1-based position. It is 1 from New until navigation moves it.
func (p *Presentation) Position() int {
	return p.presenter.Position()
}

// Total returns the number of slides.
func (p *Presentation) Total() int {
	return p.presenter.Total()
}

// Snapshot returns the counter and control state.
func (p *Presentation) Snapshot() domain.Snapshot {
	return p.presenter.Snapshot()
}

// TitleEffectRunning reports whether the rain is currently spawning glyphs.
func (p *Presentation) TitleEffectRunning() bool {
	return p.title != nil && p.title.Rain().Spawning()
}

// Elapse advances the virtual clock by d, running every effect and reveal due.
func (p *Presentation) Elapse(d time.Duration) {
	p.clock.Advance(d)
}

// Visible returns the text of the current slide's blocks that are on screen:
// static blocks always, reveal blocks once disclosed.
func (p *Presentation) Visible() []string {
	slide, err := p.presenter.Deck().Slide(p.presenter.Position())
	if err != nil {
		return nil
	}
	var out []string
	for _, b := range slide.Blocks {
		if b.Reveal != nil && !b.Reveal.Revealed {
			continue
		}
		out = append(out, b.Text)
	}
	return out
}
