package domain

import (
	"math"
	"time"
)

// RecentAnnouncement is one dedup cache entry.
type RecentAnnouncement struct {
	Fingerprint string
	At          time.Time
}

// TranscriptCursor is the last consumed byte offset of one transcript, tagged with
// the session that produced it.
type TranscriptCursor struct {
	Offset    int64
	SessionID string
}

// SharedState is the aggregate every hook process loads once, mutates in memory and
// writes back whole.
type SharedState struct {
	TaskContext             TaskContext
	LastSpeechTime          time.Time
	LastTodos               TodoSnapshot
	InitialSummaryAnnounced bool
	CurrentSessionID        string
	TranscriptPositions     map[string]TranscriptCursor
	ToolAnnouncements       map[string]time.Time
	RecentAnnouncements     []RecentAnnouncement
	LastAnnouncement        string
}

func NewSharedState(now time.Time) SharedState {
	return SharedState{
		TaskContext:         NewTaskContext(now),
		TranscriptPositions: map[string]TranscriptCursor{},
		ToolAnnouncements:   map[string]time.Time{},
	}
}

// ResetSession starts a new conversation: everything but the pacing timestamp goes.
func (s *SharedState) ResetSession(sessionID string, now time.Time) {
	s.TaskContext = NewTaskContext(now)
	s.LastTodos = nil
	s.TranscriptPositions = map[string]TranscriptCursor{}
	s.ToolAnnouncements = map[string]time.Time{}
	s.CurrentSessionID = sessionID
	s.InitialSummaryAnnounced = false
}

// BeginTurn starts a new prompt within the same conversation. Cursors and the todo
// snapshot survive.
func (s *SharedState) BeginTurn(now time.Time) {
	s.TaskContext = NewTaskContext(now)
	s.InitialSummaryAnnounced = false
}

// CursorFor returns the stored offset for path, or 0 when it was produced by a
// different session.
func (s SharedState) CursorFor(path string, sessionID string) int64 {
	cursor, ok := s.TranscriptPositions[path]
	if !ok {
		return 0
	}
	if cursor.SessionID != sessionID {
		return 0
	}

	return cursor.Offset
}

// AdvanceCursor stores offset for path unless it would move the cursor backwards
// within the same session. It reports whether anything changed.
func (s *SharedState) AdvanceCursor(path string, sessionID string, offset int64) bool {
	if s.TranscriptPositions == nil {
		s.TranscriptPositions = map[string]TranscriptCursor{}
	}

	current, ok := s.TranscriptPositions[path]
	if ok && current.SessionID == sessionID && current.Offset >= offset {
		return false
	}

	s.TranscriptPositions[path] = TranscriptCursor{Offset: offset, SessionID: sessionID}
	return true
}

// ResetCursor stores offset for path unconditionally, for logs that were truncated
// or replaced under the same session.
func (s *SharedState) ResetCursor(path string, sessionID string, offset int64) bool {
	if s.TranscriptPositions == nil {
		s.TranscriptPositions = map[string]TranscriptCursor{}
	}

	next := TranscriptCursor{Offset: offset, SessionID: sessionID}
	if current, ok := s.TranscriptPositions[path]; ok && current == next {
		return false
	}

	s.TranscriptPositions[path] = next
	return true
}

// DropCursors removes every cursor whose path keep rejects and returns the removed paths.
func (s *SharedState) DropCursors(keep func(path string) bool) []string {
	dropped := []string{}
	for path := range s.TranscriptPositions {
		if keep(path) {
			continue
		}
		delete(s.TranscriptPositions, path)
		dropped = append(dropped, path)
	}

	return dropped
}

func (s SharedState) Clone() SharedState {
	out := s
	out.TaskContext.FilesCreated = append([]string(nil), s.TaskContext.FilesCreated...)
	out.TaskContext.FilesModified = append([]string(nil), s.TaskContext.FilesModified...)
	out.TaskContext.CommandsRun = append([]string(nil), s.TaskContext.CommandsRun...)
	out.TaskContext.SearchesPerformed = append([]string(nil), s.TaskContext.SearchesPerformed...)
	out.LastTodos = s.LastTodos.Clone()
	out.TranscriptPositions = make(map[string]TranscriptCursor, len(s.TranscriptPositions))
	for path, cursor := range s.TranscriptPositions {
		out.TranscriptPositions[path] = cursor
	}
	out.ToolAnnouncements = make(map[string]time.Time, len(s.ToolAnnouncements))
	for tool, at := range s.ToolAnnouncements {
		out.ToolAnnouncements[tool] = at
	}
	out.RecentAnnouncements = append([]RecentAnnouncement(nil), s.RecentAnnouncements...)
	return out
}

// EpochSeconds renders t as fractional seconds since the Unix epoch; zero time is 0.
func EpochSeconds(t time.Time) float64 {
	if t.IsZero() {
		return 0
	}

	return float64(t.UnixNano()) / float64(time.Second)
}

func FromEpochSeconds(seconds float64) time.Time {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return time.Time{}
	}

	whole, frac := math.Modf(seconds)
	return time.Unix(int64(whole), int64(frac*float64(time.Second)))
}
