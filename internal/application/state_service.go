package application

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/bnema/voicehook/internal/domain"
	"github.com/bnema/voicehook/internal/ports"
)

// StateService wraps the state repository with the recovery rules hook processes
// rely on: loading never fails and saving never surfaces an error.
type StateService struct {
	repo   ports.StateRepository
	clock  ports.Clock
	log    *slog.Logger
	exists func(path string) bool
}

func NewStateService(repo ports.StateRepository, clock ports.Clock, log *slog.Logger) *StateService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &StateService{repo: repo, clock: clock, log: log, exists: fileExists}
}

// Load returns the persisted state, or a fresh default when it is missing or
// unreadable. Cursors for transcripts that no longer exist are dropped.
func (s *StateService) Load(ctx context.Context) *domain.SharedState {
	state, err := s.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrStateNotFound) {
			s.log.Warn("load shared state, starting from defaults", "error", err)
		}
		fresh := domain.NewSharedState(s.clock.Now())
		return &fresh
	}

	if state.TranscriptPositions == nil {
		state.TranscriptPositions = map[string]domain.TranscriptCursor{}
	}
	if state.ToolAnnouncements == nil {
		state.ToolAnnouncements = map[string]time.Time{}
	}
	if dropped := state.DropCursors(s.exists); len(dropped) > 0 {
		s.log.Debug("dropped cursors for missing transcripts", "paths", dropped)
	}

	return &state
}

// Save persists state; failures are logged and swallowed.
func (s *StateService) Save(ctx context.Context, state *domain.SharedState) {
	if err := s.repo.Save(ctx, *state); err != nil {
		s.log.Warn("save shared state", "error", err)
	}
}

func (s *StateService) RecordOperation(ctx context.Context, state *domain.SharedState, kind domain.OperationKind, subject string) {
	state.TaskContext.Record(kind, subject)
	s.Save(ctx, state)
}

func (s *StateService) ResetSession(ctx context.Context, state *domain.SharedState, sessionID string) {
	state.ResetSession(sessionID, s.clock.Now())
	s.Save(ctx, state)
}

// DiffTodoCompletions returns the descriptions of items that became completed
// since the stored snapshot, then replaces the snapshot with next.
func (s *StateService) DiffTodoCompletions(ctx context.Context, state *domain.SharedState, next domain.TodoSnapshot) []string {
	completed := state.LastTodos.Completions(next)
	state.LastTodos = next.Clone()
	s.Save(ctx, state)
	return completed
}

// AdvanceCursor stores the new offset for path under sessionID and saves only when
// it moved.
func (s *StateService) AdvanceCursor(ctx context.Context, state *domain.SharedState, path, sessionID string, offset int64) {
	if state.AdvanceCursor(path, sessionID, offset) {
		s.Save(ctx, state)
	}
}

// ResetCursor replaces the cursor for path after the log was truncated or replaced.
func (s *StateService) ResetCursor(ctx context.Context, state *domain.SharedState, path, sessionID string, offset int64) {
	if state.ResetCursor(path, sessionID, offset) {
		s.log.Debug("transcript restarted", "path", path, "offset", offset)
		s.Save(ctx, state)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
