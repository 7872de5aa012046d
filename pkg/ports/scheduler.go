package ports

import "time"

// Timer is a cancellation handle for a scheduled callback.
type Timer interface {
	// Stop prevents any future run of the callback.
	// It returns false if the timer had already fired (one-shot) or was stopped.
	Stop() bool
}

// Scheduler runs callbacks on the event loop after a delay.
// Callbacks never run concurrently with each other or with input handlers.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
}
