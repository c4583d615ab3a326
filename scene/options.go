package scene

import (
	"time"

	"go.uber.org/zap"
)

const (
	DefaultMaxDeltaTime = 50 * time.Millisecond
	DefaultFrameDelay   = 16 * time.Millisecond
)

type Option func(*Registry)

// WithClock replaces the wall clock used to measure elapsed frame time.
func WithClock(c Clock) Option {
	return func(r *Registry) {
		r.clock = c
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// WithMaxDeltaTime sets the clamp applied to elapsed time before it reaches
// any update. Non-positive values keep the default.
func WithMaxDeltaTime(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.maxDelta = d
		}
	}
}

// WithFrameDelay sets the pacing interval used by Run.
func WithFrameDelay(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.frameDelay = d
		}
	}
}
