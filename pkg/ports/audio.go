package ports

// Cue names a short audio feedback sound.
type Cue string

const (
	CueNavigate Cue = "navigate"
	CueError    Cue = "error"
)

// CuePlayer plays audio cues. Implementations must not block the caller.
type CuePlayer interface {
	Play(cue Cue)
}

// NopCuePlayer discards every cue.
type NopCuePlayer struct{}

// Play does nothing.
func (NopCuePlayer) Play(Cue) {}
