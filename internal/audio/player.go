package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/aretw0/matrixdeck/internal/logging"
	"github.com/aretw0/matrixdeck/pkg/ports"
)

// output is the sound device.
type output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Add(s beep.Streamer)
}

// speakerOutput mixes cues into the default speaker.
type speakerOutput struct {
	mixer *beep.Mixer
}

func (o *speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	if err := speaker.Init(rate, bufferSize); err != nil {
		return err
	}
	speaker.Play(o.mixer)
	return nil
}

func (o *speakerOutput) Add(s beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

// Player plays cues. It starts disabled; the speaker is opened the first time it is enabled.
// A device that cannot be opened leaves the player disabled for good.
type Player struct {
	mu          sync.Mutex
	out         output
	logger      *slog.Logger
	volume      float64
	enabled     bool
	initialized bool
	unavailable bool
}

var _ ports.CuePlayer = (*Player)(nil)

// Option configures a Player.
type Option func(*Player)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Player) {
		p.logger = logger
	}
}

// WithVolume sets the master volume, 1 being the stock cue level.
func WithVolume(volume float64) Option {
	return func(p *Player) {
		p.volume = volume
	}
}

// NewPlayer creates a disabled player.
func NewPlayer(opts ...Option) *Player {
	p := &Player{
		out:    &speakerOutput{mixer: &beep.Mixer{}},
		volume: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	return p
}

// Toggle flips audio on or off and returns the new state.
func (p *Player) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.enabled {
		p.enabled = false
		return false
	}
	return p.enableLocked()
}

// Enable turns audio on, returning false if no device is available.
func (p *Player) Enable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enableLocked()
}

func (p *Player) enableLocked() bool {
	if p.unavailable {
		return false
	}
	if !p.initialized {
		if err := p.out.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
			p.logger.Debug("audio unavailable", "error", err)
			p.unavailable = true
			return false
		}
		p.initialized = true
	}
	p.enabled = true
	return true
}

// Enabled reports whether cues are audible.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Play starts cue without waiting for it. Unknown cues and a disabled player are silent.
func (p *Player) Play(cue ports.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}
	tone, ok := Tones[cue]
	if !ok {
		return
	}
	p.out.Add(withVolume(NewBeep(tone, sampleRate), p.volume))
}
