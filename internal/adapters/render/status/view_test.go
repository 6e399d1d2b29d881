package status

import (
	"testing"
	"time"

	"github.com/bnema/voicehook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEmptyState(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	output, err := Render(domain.NewSharedState(now), RenderOptions{Now: now, MinSpacing: time.Second})

	require.NoError(t, err)
	assert.Contains(t, output, "Voice Hook State")
	assert.Contains(t, output, "session: none")
	assert.Contains(t, output, "last spoken: never")
	assert.Contains(t, output, "ready")
	assert.Contains(t, output, "initial summary: pending")
	assert.Contains(t, output, "No todos recorded.")
	assert.Contains(t, output, "No transcript cursors.")
	assert.NotContains(t, output, "Tool announcements")
}

func TestRenderActiveSession(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	state := domain.NewSharedState(now.Add(-2 * time.Minute))
	state.CurrentSessionID = "session-1"
	state.LastSpeechTime = now.Add(-500 * time.Millisecond)
	state.InitialSummaryAnnounced = true
	state.TaskContext.Record(domain.OperationCreated, "a.go")
	state.TaskContext.Record(domain.OperationCreated, "a.go")
	state.TaskContext.Record(domain.OperationModified, "b.go")
	state.TaskContext.Record(domain.OperationCommand, "go test ./...")
	state.LastTodos = domain.TodoSnapshot{
		{ID: "1", Status: domain.TodoCompleted, Content: "write parser"},
		{ID: "2", Status: domain.TodoInProgress, Content: "wire cli"},
		{ID: "3", Status: domain.TodoPending, Content: "docs"},
	}
	state.AdvanceCursor("/tmp/session-1.jsonl", "session-1", 2048)
	state.ToolAnnouncements["Bash"] = now.Add(-3 * time.Second)
	state.LastAnnouncement = "Running command"

	output, err := Render(state, RenderOptions{Now: now, MinSpacing: time.Second, StatePath: "/tmp/state.toml"})

	require.NoError(t, err)
	assert.Contains(t, output, "session: session-1")
	assert.Contains(t, output, "file: /tmp/state.toml")
	assert.Contains(t, output, "last spoken: 0s ago")
	assert.Contains(t, output, "cooling down")
	assert.Contains(t, output, "initial summary: announced")
	assert.Contains(t, output, "started: 2m ago")
	assert.Contains(t, output, "operations: 4")
	assert.Contains(t, output, "created: 1 (a.go)")
	assert.Contains(t, output, "commands: 1 (go test ./...)")
	assert.Contains(t, output, "[x] write parser")
	assert.Contains(t, output, "[~] wire cli")
	assert.Contains(t, output, "[ ] docs")
	assert.Contains(t, output, "/tmp/session-1.jsonl @ 2048 bytes (session-1)")
	assert.Contains(t, output, "Bash: 3s ago")
	assert.Contains(t, output, `"Running command"`)
}

func TestListPreviewTruncates(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2 (a, b)", listPreview([]string{"a", "b"}))
	assert.Equal(t, "5 (a, b, c, +2)", listPreview([]string{"a", "b", "c", "d", "e"}))
}

func TestFormatAgo(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	tests := map[string]struct {
		at   time.Time
		want string
	}{
		"zero":    {at: time.Time{}, want: "never"},
		"future":  {at: now.Add(time.Second), want: "just now"},
		"seconds": {at: now.Add(-12 * time.Second), want: "12s ago"},
		"minutes": {at: now.Add(-5 * time.Minute), want: "5m ago"},
		"hours":   {at: now.Add(-3 * time.Hour), want: "3h ago"},
		"days":    {at: now.Add(-48 * time.Hour), want: "09:00 on 29 Sep"},
	}

	for name, tc := range tests {
		assert.Equal(t, tc.want, formatAgo(tc.at, now), name)
	}
}
