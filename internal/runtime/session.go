package runtime

import (
	"context"

	"github.com/aretw0/matrixdeck/internal/clock"
	"github.com/aretw0/matrixdeck/pkg/domain"
)

// Session exposes a Presenter to other goroutines. Every call is executed on the
// event loop, so remote requests serialize with keys, clicks and timers.
type Session struct {
	loop      *clock.Loop
	presenter *Presenter
}

// NewSession binds p to loop.
func NewSession(loop *clock.Loop, p *Presenter) *Session {
	return &Session{loop: loop, presenter: p}
}

// Snapshot returns the current state.
func (s *Session) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	return s.do(ctx, func() error { return nil })
}

// Advance moves forward. Hitting the last slide is not an error.
func (s *Session) Advance(ctx context.Context) (domain.Snapshot, error) {
	return s.do(ctx, func() error {
		s.presenter.Advance()
		return nil
	})
}

// Retreat moves back. Hitting the first slide is not an error.
func (s *Session) Retreat(ctx context.Context) (domain.Snapshot, error) {
	return s.do(ctx, func() error {
		s.presenter.Retreat()
		return nil
	})
}

// GoTo jumps to position n, returning domain.ErrInvalidSlideIndex when it is out of range.
func (s *Session) GoTo(ctx context.Context, n int) (domain.Snapshot, error) {
	return s.do(ctx, func() error {
		return s.presenter.GoTo(n)
	})
}

func (s *Session) do(ctx context.Context, fn func() error) (domain.Snapshot, error) {
	var (
		snap   domain.Snapshot
		navErr error
	)
	if err := s.loop.Call(ctx, func() {
		navErr = fn()
		snap = s.presenter.Snapshot()
	}); err != nil {
		return domain.Snapshot{}, err
	}
	return snap, navErr
}
