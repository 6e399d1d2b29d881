package hookinput

import (
	"strings"
	"testing"

	"github.com/bnema/voicehook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreToolUseWrite(t *testing.T) {
	t.Parallel()

	payload := Parse([]byte(`{
		"session_id": "abc",
		"transcript_path": "/home/dev/.claude/projects/p/abc.jsonl",
		"tool_name": "Write",
		"tool_input": {"file_path": "/repo/main.go", "content": "package main"}
	}`))

	require.NotNil(t, payload)
	assert.Equal(t, "abc", payload.SessionID)
	assert.Equal(t, "/home/dev/.claude/projects/p/abc.jsonl", payload.TranscriptPath)
	assert.Equal(t, "Write", payload.ToolName)
	assert.Equal(t, "/repo/main.go", payload.FilePath)
	assert.False(t, payload.HasTodos)
}

func TestParseSearchAndCommand(t *testing.T) {
	t.Parallel()

	grep := Parse([]byte(`{"tool_name":"Grep","tool_input":{"pattern":"TODO","path":"/repo"}}`))
	require.NotNil(t, grep)
	assert.Equal(t, "TODO", grep.Query)
	assert.Equal(t, "/repo", grep.FilePath)

	bash := Parse([]byte(`{"tool_name":"Bash","tool_input":{"command":"go test ./..."}}`))
	require.NotNil(t, bash)
	assert.Equal(t, "go test ./...", bash.Command)
}

func TestParseTodos(t *testing.T) {
	t.Parallel()

	payload := Parse([]byte(`{"tool_name":"TodoWrite","tool_input":{"todos":[
		{"id":"1","status":"completed","content":"write parser"},
		{"status":"In_Progress","content":"wire cli"},
		{"status":"pending"},
		"bogus"
	]}}`))

	require.NotNil(t, payload)
	assert.True(t, payload.HasTodos)
	assert.Equal(t, domain.TodoSnapshot{
		{ID: "1", Status: domain.TodoCompleted, Content: "write parser"},
		{ID: "wire cli", Status: domain.TodoInProgress, Content: "wire cli"},
	}, payload.Todos)
}

func TestParseEmptyTodoListStillCounts(t *testing.T) {
	t.Parallel()

	payload := Parse([]byte(`{"tool_name":"TodoWrite","tool_input":{"todos":[]}}`))

	require.NotNil(t, payload)
	assert.True(t, payload.HasTodos)
	assert.Empty(t, payload.Todos)
}

func TestParseToolOutput(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		`{"tool_output":"Todos have been completed"}`:         "Todos have been completed",
		`{"tool_response":{"status":"completed","items":2}}`: `{"status":"completed","items":2}`,
		`{"tool_output":"a","tool_response":"b"}`:            "a",
	}
	for input, want := range tests {
		payload := Parse([]byte(input))
		require.NotNil(t, payload, input)
		assert.Equal(t, want, payload.ToolOutput, input)
	}
}

func TestParseNotification(t *testing.T) {
	t.Parallel()

	payload := Parse([]byte(`{"session_id":"s","message":"Claude needs your permission to use Bash"}`))

	require.NotNil(t, payload)
	assert.Equal(t, "Claude needs your permission to use Bash", payload.Message)
}

func TestParseRejectsNonObjects(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "not json", "[1,2]", `"text"`, "{broken"} {
		assert.Nil(t, Parse([]byte(input)), input)
	}
}

func TestRead(t *testing.T) {
	t.Parallel()

	payload, err := Read(strings.NewReader(`{"tool_name":"Read","tool_input":{"file_path":"a.go"}}`))
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.Equal(t, "a.go", payload.FilePath)
}
