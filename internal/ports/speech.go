package ports

import (
	"context"
	"time"
)

// SpeechSink renders text as audio. A nil error means the text was spoken.
type SpeechSink interface {
	Speak(ctx context.Context, text string) error
}

// SpeechLock is the host-wide exclusive lock around the speak critical section.
// WithLock returns domain.ErrLockTimeout when the lock could not be taken in time.
type SpeechLock interface {
	WithLock(ctx context.Context, fn func(ctx context.Context) error) error
}

type PacingStore interface {
	LastSpokenAt(ctx context.Context) (time.Time, error)
	MarkSpoken(ctx context.Context, at time.Time) error
}
