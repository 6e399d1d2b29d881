package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bnema/voicehook/internal/domain"
	"github.com/bnema/voicehook/internal/ports"
)

const DefaultMinSpacing = time.Second

type AnnouncementState int

const (
	StateIdle AnnouncementState = iota
	StateLockWait
	StatePacingWait
	StateSpeaking
	StateDone
	StateTimeout
)

func (s AnnouncementState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLockWait:
		return "lock_wait"
	case StatePacingWait:
		return "pacing_wait"
	case StateSpeaking:
		return "speaking"
	case StateDone:
		return "done"
	case StateTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

const (
	ReasonEmpty       = "empty"
	ReasonDuplicate   = "duplicate"
	ReasonLockTimeout = "lock_timeout"
	ReasonSinkFailed  = "sink_failed"
)

// Outcome describes how one Announce call ended. Trace lists every state the call
// passed through, starting with StateIdle.
type Outcome struct {
	State    AnnouncementState
	Trace    []AnnouncementState
	Spoken   bool
	Reason   string
	SpokenAt time.Time
}

func (o *Outcome) enter(state AnnouncementState) {
	o.State = state
	o.Trace = append(o.Trace, state)
}

// Skipped reports an announcement that was dropped without reaching the sink.
func (o Outcome) Skipped() bool {
	return o.Reason == ReasonEmpty || o.Reason == ReasonDuplicate || o.Reason == ReasonLockTimeout
}

type Coordinator struct {
	dedup      *Deduplicator
	lock       ports.SpeechLock
	pacing     ports.PacingStore
	sink       ports.SpeechSink
	clock      ports.Clock
	log        *slog.Logger
	minSpacing time.Duration
	sleep      func(time.Duration)
}

func NewCoordinator(dedup *Deduplicator, lock ports.SpeechLock, pacing ports.PacingStore, sink ports.SpeechSink, clock ports.Clock, minSpacing time.Duration, log *slog.Logger) *Coordinator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if minSpacing < 0 {
		minSpacing = 0
	}

	return &Coordinator{
		dedup:      dedup,
		lock:       lock,
		pacing:     pacing,
		sink:       sink,
		clock:      clock,
		log:        log,
		minSpacing: minSpacing,
		sleep:      time.Sleep,
	}
}

// Announce speaks message unless it is a duplicate or the speech lock cannot be
// taken in time. Both of those are reported through the outcome with a nil error.
// The pacing timestamp is written while the lock is held, whether or not the sink
// succeeded; a sink failure is returned as an error.
func (c *Coordinator) Announce(ctx context.Context, message string) (Outcome, error) {
	outcome := Outcome{}
	outcome.enter(StateIdle)

	message = strings.TrimSpace(message)
	if message == "" {
		outcome.Reason = ReasonEmpty
		outcome.enter(StateDone)
		return outcome, nil
	}
	if c.dedup != nil && c.dedup.IsDuplicate(message) {
		c.log.Debug("skipping duplicate announcement", "message", preview(message))
		outcome.Reason = ReasonDuplicate
		outcome.enter(StateDone)
		return outcome, nil
	}

	outcome.enter(StateLockWait)
	var sinkErr error
	err := c.lock.WithLock(ctx, func(ctx context.Context) error {
		outcome.enter(StatePacingWait)
		c.waitForSpacing(ctx)

		outcome.enter(StateSpeaking)
		sinkErr = c.sink.Speak(ctx, message)

		spokenAt := c.clock.Now()
		outcome.SpokenAt = spokenAt
		if err := c.pacing.MarkSpoken(context.WithoutCancel(ctx), spokenAt); err != nil {
			c.log.Warn("record last speech time", "error", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrLockTimeout) {
			c.log.Info("speech lock busy, skipping announcement", "message", preview(message))
			outcome.Reason = ReasonLockTimeout
			outcome.enter(StateTimeout)
			return outcome, nil
		}
		return outcome, fmt.Errorf("speech lock: %w", err)
	}

	outcome.enter(StateDone)
	if sinkErr != nil {
		outcome.Reason = ReasonSinkFailed
		return outcome, fmt.Errorf("speak announcement: %w", sinkErr)
	}

	outcome.Spoken = true
	return outcome, nil
}

// SafeToAnnounce reports whether the minimum spacing since the last announcement
// on this host has elapsed. An unreadable pacing record counts as safe.
func (c *Coordinator) SafeToAnnounce(ctx context.Context) bool {
	return c.remainingSpacing(ctx) <= 0
}

func (c *Coordinator) waitForSpacing(ctx context.Context) {
	if wait := c.remainingSpacing(ctx); wait > 0 {
		c.log.Debug("delaying speech to keep spacing", "wait", wait)
		c.sleep(wait)
	}
}

func (c *Coordinator) remainingSpacing(ctx context.Context) time.Duration {
	last, err := c.pacing.LastSpokenAt(ctx)
	if err != nil {
		c.log.Warn("read last speech time", "error", err)
		return 0
	}
	if last.IsZero() {
		return 0
	}

	elapsed := c.clock.Now().Sub(last)
	if elapsed < 0 {
		return c.minSpacing
	}

	return c.minSpacing - elapsed
}

func preview(message string) string {
	const limit = 50
	runes := []rune(message)
	if len(runes) <= limit {
		return message
	}

	return string(runes[:limit]) + "..."
}
