package noop

import (
	"context"
	"log/slog"

	"github.com/bnema/voicehook/internal/ports"
)

// Sink accepts every announcement without producing sound. It backs the "none"
// speech provider and keeps pacing and dedup behaviour intact.
type Sink struct {
	log *slog.Logger
}

var _ ports.SpeechSink = (*Sink)(nil)

func NewSink(log *slog.Logger) *Sink {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Sink{log: log}
}

func (s *Sink) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.log.Info("silent announcement", "text", text)
	return nil
}
