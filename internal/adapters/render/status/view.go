package status

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bnema/voicehook/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	pacingBarWidth = 20
	maxListed      = 3
)

type RenderOptions struct {
	Now        time.Time
	MinSpacing time.Duration
	StatePath  string
}

func renderView(state domain.SharedState, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Voice Hook State"),
		s.header.Render("session: " + valueOr(state.CurrentSessionID, "none")),
	}
	if opts.StatePath != "" {
		lines = append(lines, s.header.Render("file: "+opts.StatePath))
	}

	lines = append(lines,
		s.section.Render(renderSpeech(state, opts, s)),
		s.section.Render(renderTask(state.TaskContext, opts, s)),
		s.section.Render(renderTodos(state.LastTodos, s)),
		s.section.Render(renderTranscripts(state.TranscriptPositions, s)),
	)
	if len(state.ToolAnnouncements) > 0 {
		lines = append(lines, s.section.Render(renderToolAnnouncements(state.ToolAnnouncements, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSpeech(state domain.SharedState, opts RenderOptions, s styles) string {
	parts := []string{s.heading.Render("Speech")}

	last := s.key.Render("last spoken:") + " " + s.detail.Render(formatAgo(state.LastSpeechTime, opts.Now))
	parts = append(parts, last)

	if opts.MinSpacing > 0 && !opts.Now.IsZero() {
		elapsed := opts.Now.Sub(state.LastSpeechTime)
		if state.LastSpeechTime.IsZero() {
			elapsed = opts.MinSpacing
		}
		percent := 100 * elapsed.Seconds() / opts.MinSpacing.Seconds()
		label := s.ready.Render("ready")
		if percent < 100 {
			label = s.waiting.Render("cooling down")
		}
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top,
			s.key.Render("pacing:"), " ", renderProgressBar(percent, pacingBarWidth, s), " ", label,
		))
	}

	summary := "pending"
	if state.InitialSummaryAnnounced {
		summary = "announced"
	}
	parts = append(parts, s.key.Render("initial summary:")+" "+s.detail.Render(summary))

	if len(state.RecentAnnouncements) > 0 {
		parts = append(parts, s.key.Render("recent announcements:")+" "+s.detail.Render(fmt.Sprintf("%d", len(state.RecentAnnouncements))))
	}
	if state.LastAnnouncement != "" {
		parts = append(parts, s.key.Render("last announcement:")+" "+s.muted.Render(quote(state.LastAnnouncement)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderTask(task domain.TaskContext, opts RenderOptions, s styles) string {
	parts := []string{
		s.heading.Render("Task"),
		s.key.Render("started:") + " " + s.detail.Render(formatAgo(task.StartedAt, opts.Now)),
		s.key.Render("operations:") + " " + s.detail.Render(fmt.Sprintf("%d", task.OperationsCount)),
	}

	buckets := []struct {
		label  string
		values []string
	}{
		{label: "created", values: unique(task.FilesCreated)},
		{label: "modified", values: unique(task.FilesModified)},
		{label: "commands", values: task.CommandsRun},
		{label: "searches", values: task.SearchesPerformed},
	}
	for _, bucket := range buckets {
		if len(bucket.values) == 0 {
			continue
		}
		parts = append(parts, s.key.Render(bucket.label+":")+" "+s.detail.Render(listPreview(bucket.values)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderTodos(todos domain.TodoSnapshot, s styles) string {
	parts := []string{s.heading.Render("Todos")}
	if len(todos) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(parts, s.empty.Render("No todos recorded."))...)
	}

	for _, item := range todos {
		content := valueOr(item.Content, item.ID)
		switch strings.ToLower(string(item.Status)) {
		case string(domain.TodoCompleted):
			parts = append(parts, s.done.Render("[x] "+content))
		case string(domain.TodoInProgress):
			parts = append(parts, s.detail.Render("[~] "+content))
		default:
			parts = append(parts, s.muted.Render("[ ] "+content))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderTranscripts(cursors map[string]domain.TranscriptCursor, s styles) string {
	parts := []string{s.heading.Render("Transcripts")}
	if len(cursors) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(parts, s.empty.Render("No transcript cursors."))...)
	}

	for _, path := range sortedKeys(cursors) {
		cursor := cursors[path]
		line := s.detail.Render(path) + " " + s.muted.Render(fmt.Sprintf("@ %d bytes", cursor.Offset))
		if cursor.SessionID != "" {
			line += " " + s.muted.Render("("+cursor.SessionID+")")
		}
		parts = append(parts, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderToolAnnouncements(tools map[string]time.Time, opts RenderOptions, s styles) string {
	parts := []string{s.heading.Render("Tool announcements")}
	for _, tool := range sortedKeys(tools) {
		parts = append(parts, s.key.Render(tool+":")+" "+s.detail.Render(formatAgo(tools[tool], opts.Now)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100))
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", width-filled))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatAgo(at, now time.Time) string {
	if at.IsZero() {
		return "never"
	}
	if now.IsZero() {
		return at.Format(time.RFC3339)
	}
	if at.After(now) {
		return "just now"
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return fmt.Sprintf("%ds ago", int(elapsed.Seconds()))
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return at.Format("15:04 on 02 Jan")
	}
}

func listPreview(values []string) string {
	if len(values) <= maxListed {
		return fmt.Sprintf("%d (%s)", len(values), strings.Join(values, ", "))
	}

	return fmt.Sprintf("%d (%s, +%d)", len(values), strings.Join(values[:maxListed], ", "), len(values)-maxListed)
}

func unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}

	return out
}

func quote(text string) string {
	const limit = 60
	runes := []rune(text)
	if len(runes) > limit {
		text = string(runes[:limit]) + "..."
	}

	return `"` + text + `"`
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}
