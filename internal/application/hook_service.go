package application

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bnema/voicehook/internal/domain"
	"github.com/bnema/voicehook/internal/ports"
	"github.com/bnema/voicehook/internal/transcript"
)

const (
	ReasonAcknowledge    = "acknowledge"
	ReasonTodoCompleted  = "todo_completed"
	ReasonFileAction     = "file_action"
	ReasonToolAction     = "tool_action"
	ReasonRateLimited    = "rate_limited"
	ReasonInitialSummary = "initial_summary"
	ReasonTooSoon        = "too_soon"
	ReasonApproval       = "approval"
	ReasonMarker         = "completion_marker"
	ReasonUpdate         = "update"
	ReasonStopSummary    = "stop_summary"
	ReasonTaskSummary    = "task_summary"
	ReasonFallback       = "fallback"
	ReasonMessageFlag    = "message_flag"
	ReasonNothingNew     = "nothing_new"
)

const (
	meaningfulMessageLength = 20
	markerTaskLength        = 50
)

var (
	markerPattern = regexp.MustCompile(`(?i)\b(completed|finished|done):\s*(.+)`)
	checkPattern  = regexp.MustCompile(`[☑✓]\s*(.+)`)
)

type HookConfig struct {
	SummaryMaxLength int
	SummaryMinLength int
	InitialMaxLength int
	InitialMinLength int
	UpdateMaxLength  int
	ToolInterval     time.Duration
	PersistDedup     bool
	Nickname         string
}

func DefaultHookConfig() HookConfig {
	return HookConfig{
		SummaryMaxLength: 350,
		SummaryMinLength: 50,
		InitialMaxLength: 400,
		InitialMinLength: 100,
		UpdateMaxLength:  200,
		ToolInterval:     3 * time.Second,
	}
}

// Decision is what a hook event should say, if anything.
type Decision struct {
	Speak  bool
	Text   string
	Reason string
}

func speak(text, reason string) Decision {
	text = strings.TrimSpace(text)
	if text == "" {
		return Decision{Reason: reason}
	}

	return Decision{Speak: true, Text: text, Reason: reason}
}

func silent(reason string) Decision {
	return Decision{Reason: reason}
}

type Report struct {
	Decision Decision
	Outcome  Outcome
}

// HookService turns one hook event into at most one announcement. The shared state
// is loaded once per event and passed explicitly through every step.
type HookService struct {
	state   *StateService
	coord   *Coordinator
	dedup   *Deduplicator
	phrases Phrases
	cfg     HookConfig
	clock   ports.Clock
	log     *slog.Logger
}

func NewHookService(state *StateService, coord *Coordinator, dedup *Deduplicator, cfg HookConfig, clock ports.Clock, log *slog.Logger) *HookService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &HookService{
		state:   state,
		coord:   coord,
		dedup:   dedup,
		phrases: Phrases{Nickname: cfg.Nickname},
		cfg:     cfg,
		clock:   clock,
		log:     log,
	}
}

// Handle decides what event should say and announces it. Only failures of the
// speech path are returned; everything else degrades to a silent decision.
func (s *HookService) Handle(ctx context.Context, event domain.HookEvent) (Report, error) {
	st := s.state.Load(ctx)

	decision := s.Decide(ctx, st, event)
	if !decision.Speak && event.Kind != domain.HookPreToolUse && event.Kind != domain.HookPostToolUse {
		if flag := strings.TrimSpace(event.Message); flag != "" {
			decision = speak(flag, ReasonMessageFlag)
		}
	}

	report := Report{Decision: decision}
	if !decision.Speak {
		s.log.Debug("hook stays silent", "reason", decision.Reason)
		s.state.Save(ctx, st)
		return report, nil
	}

	if s.cfg.PersistDedup && s.dedup != nil {
		s.dedup.Restore(st.RecentAnnouncements, st.LastAnnouncement)
	}

	outcome, err := s.coord.Announce(ctx, decision.Text)
	report.Outcome = outcome
	if !outcome.SpokenAt.IsZero() {
		st.LastSpeechTime = outcome.SpokenAt
	}
	if s.cfg.PersistDedup && s.dedup != nil {
		st.RecentAnnouncements, st.LastAnnouncement = s.dedup.Snapshot()
	}

	s.log.Info("announcement finished",
		"reason", decision.Reason,
		"state", outcome.State.String(),
		"skip", outcome.Reason,
	)
	s.state.Save(ctx, st)

	return report, err
}

// Decide applies the per-hook rules to st and returns the decision. It mutates st
// and persists the intermediate changes the state operations require.
func (s *HookService) Decide(ctx context.Context, st *domain.SharedState, event domain.HookEvent) Decision {
	switch event.Kind {
	case domain.HookUserPromptSubmit:
		return s.userPromptSubmit(ctx, st, event)
	case domain.HookPreToolUse:
		s.recordOperation(ctx, st, event, true)
		return s.preToolUse(ctx, st, event)
	case domain.HookPostToolUse:
		s.recordOperation(ctx, st, event, false)
		return s.postToolUse(ctx, st, event)
	case domain.HookStop:
		s.recordOperation(ctx, st, event, false)
		return s.stop(ctx, st, event)
	case domain.HookNotification:
		s.recordOperation(ctx, st, event, false)
		return s.notification(event)
	default:
		return silent(ReasonFallback)
	}
}

// recordOperation counts every event; only PreToolUse carries a subject so a tool
// call lands in its bucket once.
func (s *HookService) recordOperation(ctx context.Context, st *domain.SharedState, event domain.HookEvent, withSubject bool) {
	kind, ok := domain.OperationKindForTool(event.Tool())
	subject := ""
	if ok && withSubject {
		subject = event.Subject(kind)
	}
	s.state.RecordOperation(ctx, st, kind, subject)
}

func (s *HookService) userPromptSubmit(ctx context.Context, st *domain.SharedState, event domain.HookEvent) Decision {
	sessionID := event.SessionID()
	if sessionID != "" && sessionID != st.CurrentSessionID {
		s.log.Debug("new conversation", "session_id", sessionID, "previous", st.CurrentSessionID)
		s.state.ResetSession(ctx, st, sessionID)
	} else {
		st.BeginTurn(s.clock.Now())
	}

	return speak(s.phrases.Acknowledgement(), ReasonAcknowledge)
}

func (s *HookService) preToolUse(ctx context.Context, st *domain.SharedState, event domain.HookEvent) Decision {
	tool := event.Tool()
	switch tool {
	case "TodoWrite":
		if event.Payload == nil || !event.Payload.HasTodos {
			return silent(ReasonNothingNew)
		}
		completed := s.state.DiffTodoCompletions(ctx, st, event.Payload.Todos)
		if len(completed) == 0 {
			return silent(ReasonNothingNew)
		}
		return speak(s.phrases.TodoCompleted(completed[len(completed)-1]), ReasonTodoCompleted)
	case "Read":
		if path := event.Path(); path != "" {
			return speak(s.phrases.Reading(path), ReasonFileAction)
		}
	case "Edit", "Write", "MultiEdit":
		if path := event.Path(); path != "" {
			return speak(s.phrases.Editing(path), ReasonFileAction)
		}
	}

	phrase, known := s.phrases.ToolAction(tool)
	if !known || phrase == "" {
		return silent(ReasonFallback)
	}

	now := s.clock.Now()
	if last, ok := st.ToolAnnouncements[tool]; ok && now.Sub(last) < s.cfg.ToolInterval {
		return silent(ReasonRateLimited)
	}
	if st.ToolAnnouncements == nil {
		st.ToolAnnouncements = map[string]time.Time{}
	}
	st.ToolAnnouncements[tool] = now

	return speak(phrase, ReasonToolAction)
}

type minedMessage struct {
	raw   string
	clean string
}

// mine reads the transcript messages added since the stored cursor and advances it.
func (s *HookService) mine(ctx context.Context, st *domain.SharedState, event domain.HookEvent) []minedMessage {
	path := event.TranscriptPath()
	if path == "" {
		return nil
	}

	sessionID := event.SessionID()
	result, err := transcript.ExtractNew(path, st.CursorFor(path, sessionID))
	if err != nil {
		s.log.Warn("read transcript", "path", path, "error", err)
	}
	if result.Skipped > 0 {
		s.log.Debug("skipped malformed transcript lines", "path", path, "count", result.Skipped)
	}
	if result.Restarted {
		s.state.ResetCursor(ctx, st, path, sessionID, result.Cursor)
	} else {
		s.state.AdvanceCursor(ctx, st, path, sessionID, result.Cursor)
	}

	mined := make([]minedMessage, 0, len(result.Messages))
	for _, message := range result.Messages {
		if clean := transcript.Clean(message.Text); clean != "" {
			mined = append(mined, minedMessage{raw: message.Text, clean: clean})
		}
	}

	return mined
}

func (s *HookService) postToolUse(ctx context.Context, st *domain.SharedState, event domain.HookEvent) Decision {
	if event.Tool() == "TodoWrite" && event.Payload != nil &&
		strings.Contains(strings.ToLower(event.Payload.ToolOutput), "completed") {
		return speak("Task completed", ReasonTodoCompleted)
	}

	mined := s.mine(ctx, st, event)
	if len(mined) == 0 {
		return silent(ReasonNothingNew)
	}

	if !st.InitialSummaryAnnounced {
		raw := make([]string, 0, len(mined))
		for _, message := range mined {
			raw = append(raw, message.raw)
		}
		st.InitialSummaryAnnounced = true
		summary := transcript.Summarize(strings.Join(raw, "\n\n"), s.cfg.InitialMaxLength, s.cfg.InitialMinLength)
		return speak(summary, ReasonInitialSummary)
	}

	if !s.coord.SafeToAnnounce(ctx) {
		return silent(ReasonTooSoon)
	}

	for _, message := range mined {
		if transcript.DetectApprovalRequest(message.clean) {
			return speak(s.phrases.ApprovalRequest(""), ReasonApproval)
		}
	}

	for _, message := range mined {
		if text, ok := completionMarker(message.clean); ok {
			return speak(text, ReasonMarker)
		}
	}

	for i := len(mined) - 1; i >= 0; i-- {
		if utf8.RuneCountInString(mined[i].clean) > meaningfulMessageLength {
			return speak(transcript.Summarize(mined[i].raw, s.cfg.UpdateMaxLength, s.cfg.SummaryMinLength), ReasonUpdate)
		}
	}

	return silent(ReasonNothingNew)
}

func completionMarker(message string) (string, bool) {
	if match := markerPattern.FindStringSubmatch(message); match != nil {
		verb := "Completed"
		if strings.EqualFold(match[1], "finished") {
			verb = "Finished"
		}
		return verb + " " + clip(strings.TrimSpace(match[2]), markerTaskLength), true
	}
	if match := checkPattern.FindStringSubmatch(message); match != nil {
		return "Completed " + clip(strings.TrimSpace(match[1]), markerTaskLength), true
	}

	return "", false
}

func (s *HookService) stop(ctx context.Context, st *domain.SharedState, event domain.HookEvent) Decision {
	mined := s.mine(ctx, st, event)
	if len(mined) > 0 {
		last := mined[len(mined)-1]
		summary := transcript.Summarize(last.raw, s.cfg.SummaryMaxLength, s.cfg.SummaryMinLength)
		if text := s.phrases.Completion(summary); text != "" {
			return speak(text, ReasonStopSummary)
		}
	}

	if text := s.phrases.Completion(s.phrases.TaskSummary(st.TaskContext)); text != "" {
		return speak(text, ReasonTaskSummary)
	}

	return speak("Done", ReasonFallback)
}

func (s *HookService) notification(event domain.HookEvent) Decision {
	text := event.Text()
	if _, after, found := strings.Cut(text, "permission to use"); found {
		return speak(s.phrases.ApprovalRequest(strings.TrimSpace(after)), ReasonApproval)
	}

	return speak(s.phrases.ApprovalRequest(""), ReasonApproval)
}

func clip(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	return string(runes[:limit])
}
