package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSlideEnter         EventType = "slide_enter"
	EventSlideLeave         EventType = "slide_leave"
	EventNavigationRejected EventType = "navigation_rejected"
)

// Trigger names the operation that caused a navigation.
type Trigger string

const (
	TriggerStart   Trigger = "start"
	TriggerAdvance Trigger = "advance"
	TriggerRetreat Trigger = "retreat"
	TriggerJump    Trigger = "jump"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// SlideEvent represents entry or exit from a slide.
type SlideEvent struct {
	EventBase
	Position int     `json:"position"`
	Title    string  `json:"title"`
	Trigger  Trigger `json:"trigger"`
}

// RejectedEvent represents a navigation request that changed nothing.
type RejectedEvent struct {
	EventBase
	Current   int     `json:"current"`
	Requested int     `json:"requested"`
	Trigger   Trigger `json:"trigger"`
}

// LifecycleHooks defines callbacks for presenter observability.
// Hooks run on the event loop and must not block.
type LifecycleHooks struct {
	OnSlideEnter         func(context.Context, *SlideEvent)
	OnSlideLeave         func(context.Context, *SlideEvent)
	OnNavigationRejected func(context.Context, *RejectedEvent)
}

// MergeHooks chains several hook sets; each callback runs in argument order.
func MergeHooks(sets ...LifecycleHooks) LifecycleHooks {
	var enter, leave []func(context.Context, *SlideEvent)
	var rejected []func(context.Context, *RejectedEvent)
	for _, h := range sets {
		if h.OnSlideEnter != nil {
			enter = append(enter, h.OnSlideEnter)
		}
		if h.OnSlideLeave != nil {
			leave = append(leave, h.OnSlideLeave)
		}
		if h.OnNavigationRejected != nil {
			rejected = append(rejected, h.OnNavigationRejected)
		}
	}

	var merged LifecycleHooks
	if len(enter) > 0 {
		merged.OnSlideEnter = func(ctx context.Context, e *SlideEvent) {
			for _, fn := range enter {
				fn(ctx, e)
			}
		}
	}
	if len(leave) > 0 {
		merged.OnSlideLeave = func(ctx context.Context, e *SlideEvent) {
			for _, fn := range leave {
				fn(ctx, e)
			}
		}
	}
	if len(rejected) > 0 {
		merged.OnNavigationRejected = func(ctx context.Context, e *RejectedEvent) {
			for _, fn := range rejected {
				fn(ctx, e)
			}
		}
	}
	return merged
}
