// Package audio plays the short navigation cues through the system speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/aretw0/matrixdeck/pkg/ports"
)

const sampleRate = beep.SampleRate(44100)

// floor is the gain every cue decays to by its end.
const floor = 0.01

// Tone describes one cue.
type Tone struct {
	Frequency float64
	Duration  time.Duration
	Volume    float64
}

// Tones are the stock cues.
var Tones = map[ports.Cue]Tone{
	ports.CueNavigate: {Frequency: 800, Duration: 100 * time.Millisecond, Volume: 0.05},
	ports.CueError:    {Frequency: 400, Duration: 200 * time.Millisecond, Volume: 0.1},
}

// squareBeep is a square wave whose gain ramps exponentially from Volume down to floor.
type squareBeep struct {
	freq  float64
	gain  float64
	decay float64
	phase float64
	pos   int
	total int
	rate  beep.SampleRate
}

// NewBeep creates a finite streamer for t at rate.
func NewBeep(t Tone, rate beep.SampleRate) beep.Streamer {
	total := rate.N(t.Duration)
	b := &squareBeep{freq: t.Frequency, gain: t.Volume, total: total, rate: rate, decay: 1}
	if total > 0 && t.Volume > floor {
		b.decay = math.Pow(floor/t.Volume, 1/float64(total))
	}
	return b
}

func (b *squareBeep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if b.pos >= b.total {
			return i, i > 0
		}
		val := b.gain
		if b.phase >= 0.5 {
			val = -val
		}
		samples[i][0] = val
		samples[i][1] = val

		b.phase += b.freq / float64(b.rate)
		b.phase -= math.Floor(b.phase)
		b.gain *= b.decay
		b.pos++
	}
	return len(samples), true
}

func (b *squareBeep) Err() error { return nil }

// withVolume scales s by vol; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
