package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/matrixdeck/internal/effects"
	"github.com/aretw0/matrixdeck/internal/logging"
	"github.com/aretw0/matrixdeck/internal/scene"
	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/aretw0/matrixdeck/pkg/ports"
)

// Presenter is the navigation state machine. It owns the current position and
// drives every side effect of a transition. It is confined to the event loop.
type Presenter struct {
	deck  *domain.Deck
	r     ports.Renderer
	sched ports.Scheduler

	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	cues       ports.CuePlayer
	title      *TitleEffect
	disclosure *Disclosure
	glitch     *effects.Glitch
	typewriter *effects.Typewriter
	sessionID  string
	settle     time.Duration
	stagger    time.Duration

	position int
	slides   map[int]ports.NodeID
	counter  ports.NodeID
	prev     ports.NodeID
	next     ports.NodeID
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Presenter) {
		p.logger = logger
	}
}

// WithHooks registers lifecycle hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Presenter) {
		p.hooks = hooks
	}
}

// WithCuePlayer sets the audio cue sink.
func WithCuePlayer(cues ports.CuePlayer) Option {
	return func(p *Presenter) {
		p.cues = cues
	}
}

// WithTitleEffect attaches the title effect toggled on slide 1.
func WithTitleEffect(title *TitleEffect) Option {
	return func(p *Presenter) {
		p.title = title
	}
}

// WithDisclosure replaces the default disclosure controller.
func WithDisclosure(d *Disclosure) Option {
	return func(p *Presenter) {
		p.disclosure = d
	}
}

// WithTiming sets the settle and stagger delays of the default disclosure controller.
func WithTiming(settle, stagger time.Duration) Option {
	return func(p *Presenter) {
		p.settle = settle
		p.stagger = stagger
	}
}

// WithGlitch glitches the counter when navigation hits a boundary.
func WithGlitch(g *effects.Glitch) Option {
	return func(p *Presenter) {
		p.glitch = g
	}
}

// WithTypewriter retypes the title heading whenever slide 1 is entered.
func WithTypewriter(tw *effects.Typewriter) Option {
	return func(p *Presenter) {
		p.typewriter = tw
	}
}

// WithSessionID tags snapshots and events.
func WithSessionID(id string) Option {
	return func(p *Presenter) {
		p.sessionID = id
	}
}

// NewPresenter binds deck to the nodes already mounted on r.
// Missing chrome is logged and the feature depending on it is skipped.
func NewPresenter(deck *domain.Deck, r ports.Renderer, sched ports.Scheduler, opts ...Option) (*Presenter, error) {
	if deck == nil || deck.Total() == 0 {
		return nil, domain.ErrEmptyDeck
	}

	p := &Presenter{
		deck:     deck,
		r:        r,
		sched:    sched,
		cues:     ports.NopCuePlayer{},
		position: 1,
		slides:   make(map[int]ports.NodeID, deck.Total()),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	if p.disclosure == nil {
		p.disclosure = NewDisclosure(r, sched, p.settle, p.stagger)
	}

	for _, s := range deck.Slides {
		id, ok := r.Lookup(scene.SlideName(s.Position))
		if !ok {
			p.logger.Warn("slide node not mounted", "position", s.Position)
			continue
		}
		p.slides[s.Position] = id
	}
	p.counter = p.lookup(scene.NameCounter, "slide counter")
	p.prev = p.lookup(scene.NamePrev, "previous control")
	p.next = p.lookup(scene.NameNext, "next control")
	if p.title == nil {
		p.logger.Warn("title effect container missing, effect disabled")
	}

	return p, nil
}

func (p *Presenter) lookup(name, feature string) ports.NodeID {
	id, ok := p.r.Lookup(name)
	if !ok {
		p.logger.Warn("element missing, feature disabled", "element", name, "feature", feature)
		return 0
	}
	return id
}

// Start activates slide 1.
func (p *Presenter) Start() {
	p.transition(1, domain.TriggerStart)
}

// Advance moves to the next slide. At the last slide it changes nothing and returns false.
func (p *Presenter) Advance() bool {
	if p.position >= p.deck.Total() {
		p.reject(p.position+1, domain.TriggerAdvance)
		return false
	}
	p.transition(p.position+1, domain.TriggerAdvance)
	return true
}

// Retreat moves to the previous slide. At slide 1 it changes nothing and returns false.
func (p *Presenter) Retreat() bool {
	if p.position <= 1 {
		p.reject(p.position-1, domain.TriggerRetreat)
		return false
	}
	p.transition(p.position-1, domain.TriggerRetreat)
	return true
}

// JumpTo moves to position n. Out-of-range positions are ignored.
// Jumping to the current position replays its disclosure.
func (p *Presenter) JumpTo(n int) bool {
	return p.GoTo(n) == nil
}

// GoTo is the strict form of JumpTo: an out-of-range position returns
// *domain.InvalidSlideIndexError and changes nothing.
func (p *Presenter) GoTo(n int) error {
	if !p.deck.Contains(n) {
		p.reject(n, domain.TriggerJump)
		return &domain.InvalidSlideIndexError{Requested: n, Total: p.deck.Total()}
	}
	p.transition(n, domain.TriggerJump)
	return nil
}

// Position returns the current 1-based position.
func (p *Presenter) Position() int {
	return p.position
}

// Total returns the number of slides.
func (p *Presenter) Total() int {
	return p.deck.Total()
}

// Deck returns the deck being presented.
func (p *Presenter) Deck() *domain.Deck {
	return p.deck
}

// TitleActive reports whether the title effect is on, which holds exactly on slide 1.
func (p *Presenter) TitleActive() bool {
	return p.position == 1
}

// Snapshot returns the derived view of the current state.
func (p *Presenter) Snapshot() domain.Snapshot {
	var title string
	if s, err := p.deck.Slide(p.position); err == nil {
		title = s.Title
	}
	return domain.NewSnapshot(p.sessionID, p.position, p.deck.Total(), title)
}

func (p *Presenter) transition(target int, trigger domain.Trigger) {
	slide, err := p.deck.Slide(target)
	if err != nil {
		return
	}
	previous := p.position

	if id, ok := p.slides[previous]; ok {
		p.r.SetActive(id, false)
	}
	p.position = target
	if id, ok := p.slides[target]; ok {
		p.r.SetActive(id, true)
	}

	p.publishCounter()
	p.publishControls()

	titleActive := target == 1
	if p.title != nil {
		p.title.SetActive(titleActive)
	}
	if titleActive && p.typewriter != nil {
		if id, ok := p.r.Lookup(scene.HeadingName(target)); ok {
			p.typewriter.Type(id, headingText(slide))
		}
	}

	p.disclosure.Activate(slide)

	if trigger != domain.TriggerStart {
		p.cues.Play(ports.CueNavigate)
	}

	p.logger.Debug("slide activated", "from", previous, "to", target, "trigger", trigger)
	p.emitTransition(previous, slide, trigger)
}

func (p *Presenter) reject(requested int, trigger domain.Trigger) {
	p.cues.Play(ports.CueError)
	if p.glitch != nil && p.counter != 0 {
		p.glitch.Apply(p.counter, domain.FormatCounter(p.position, p.deck.Total()))
	}
	p.logger.Debug("navigation rejected", "current", p.position, "requested", requested, "trigger", trigger)

	if p.hooks.OnNavigationRejected != nil {
		p.hooks.OnNavigationRejected(context.Background(), &domain.RejectedEvent{
			EventBase: p.eventBase(domain.EventNavigationRejected),
			Current:   p.position,
			Requested: requested,
			Trigger:   trigger,
		})
	}
}

func (p *Presenter) publishCounter() {
	if p.counter == 0 {
		return
	}
	if p.glitch != nil {
		p.glitch.Cancel(p.counter)
	}
	p.r.SetText(p.counter, domain.FormatCounter(p.position, p.deck.Total()))
}

func (p *Presenter) publishControls() {
	if p.prev != 0 {
		p.r.SetEnabled(p.prev, p.position > 1)
	}
	if p.next != 0 {
		p.r.SetEnabled(p.next, p.position < p.deck.Total())
	}
}

func (p *Presenter) emitTransition(previous int, slide *domain.Slide, trigger domain.Trigger) {
	ctx := context.Background()
	if trigger != domain.TriggerStart && p.hooks.OnSlideLeave != nil {
		var title string
		if s, err := p.deck.Slide(previous); err == nil {
			title = s.Title
		}
		p.hooks.OnSlideLeave(ctx, &domain.SlideEvent{
			EventBase: p.eventBase(domain.EventSlideLeave),
			Position:  previous,
			Title:     title,
			Trigger:   trigger,
		})
	}
	if p.hooks.OnSlideEnter != nil {
		p.hooks.OnSlideEnter(ctx, &domain.SlideEvent{
			EventBase: p.eventBase(domain.EventSlideEnter),
			Position:  slide.Position,
			Title:     slide.Title,
			Trigger:   trigger,
		})
	}
}

func (p *Presenter) eventBase(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: p.sched.Now(),
		Type:      t,
		SessionID: p.sessionID,
	}
}

func headingText(s *domain.Slide) string {
	for _, b := range s.Blocks {
		if b.Kind == domain.BlockHeading {
			return b.Text
		}
	}
	return s.Title
}
