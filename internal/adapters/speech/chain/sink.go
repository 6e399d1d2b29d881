package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/voicehook/internal/domain"
	"github.com/bnema/voicehook/internal/ports"
)

// Sink tries primary first and falls back only when primary reports that no
// speech backend is available. Runtime failures of a present backend are returned.
type Sink struct {
	primary  ports.SpeechSink
	fallback ports.SpeechSink
}

var _ ports.SpeechSink = (*Sink)(nil)

var (
	errNilPrimarySink  = errors.New("primary speech sink is nil")
	errNilFallbackSink = errors.New("fallback speech sink is nil")
)

func NewSink(primary ports.SpeechSink, fallback ports.SpeechSink) (*Sink, error) {
	if primary == nil {
		return nil, errNilPrimarySink
	}
	if fallback == nil {
		return nil, errNilFallbackSink
	}

	return &Sink{primary: primary, fallback: fallback}, nil
}

func (s *Sink) Speak(ctx context.Context, text string) error {
	err := s.primary.Speak(ctx, text)
	if err == nil {
		return nil
	}
	if !shouldFallBack(err) {
		return err
	}

	fallbackErr := s.fallback.Speak(ctx, text)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary sink failed: %w; fallback sink failed: %w", err, fallbackErr)
}

func shouldFallBack(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return errors.Is(err, domain.ErrSpeechUnavailable)
}
