package domain_test

import (
	"context"
	"testing"

	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestMergeHooks(t *testing.T) {
	var calls []string

	a := domain.LifecycleHooks{
		OnSlideEnter: func(ctx context.Context, e *domain.SlideEvent) { calls = append(calls, "a-enter") },
	}
	b := domain.LifecycleHooks{
		OnSlideEnter: func(ctx context.Context, e *domain.SlideEvent) { calls = append(calls, "b-enter") },
		OnNavigationRejected: func(ctx context.Context, e *domain.RejectedEvent) {
			calls = append(calls, "b-rejected")
		},
	}

	merged := domain.MergeHooks(a, domain.LifecycleHooks{}, b)
	assert.Nil(t, merged.OnSlideLeave)

	merged.OnSlideEnter(context.Background(), &domain.SlideEvent{})
	merged.OnNavigationRejected(context.Background(), &domain.RejectedEvent{})

	assert.Equal(t, []string{"a-enter", "b-enter", "b-rejected"}, calls)
}
