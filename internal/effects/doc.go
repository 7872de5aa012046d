// Package effects contains the stateless-by-contract visual effects of the presenter:
// the falling-glyph rain, click ripples, the glitch and typewriter text effects,
// code keyword highlighting and the hover glow.
//
// Effects only create, mutate and remove nodes through ports.Renderer and own no
// state beyond their timers. Nothing reads results back from them.
package effects

import "time"

// Rand is the randomness source of the effects. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// between returns a duration uniformly drawn from [lo, hi).
func between(rng Rand, lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rng.Float64()*float64(hi-lo))
}

// betweenF returns a float uniformly drawn from [lo, hi).
func betweenF(rng Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
