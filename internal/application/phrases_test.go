package application

import (
	"testing"

	"github.com/bnema/voicehook/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPhrasesTodoCompleted(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"fix login bug":      "Fixed login bug",
		"Add retry logic":    "Added retry logic",
		"update the docs":    "Updated the docs",
		"examine flaky test": "Examined flaky test",
		"ship it":            "Completed: ship it",
	}

	p := Phrases{}
	for task, want := range tests {
		assert.Equal(t, want, p.TodoCompleted(task), task)
	}
}

func TestPhrasesFileAnnouncements(t *testing.T) {
	t.Parallel()

	p := Phrases{}
	assert.Equal(t, "Reading main", p.Reading("/repo/cmd/main.go"))
	assert.Equal(t, "Reading config.toml", p.Reading("config.toml"))
	assert.Equal(t, "Editing Go file handler", p.Editing("/repo/handler.go"))
	assert.Equal(t, "Editing proto file api", p.Editing("api.proto"))
	assert.Equal(t, "Editing Makefile", p.Editing("Makefile"))
}

func TestPhrasesApprovalRequest(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Claude needs your permission to run a command", Phrases{}.ApprovalRequest("Bash"))
	assert.Equal(t, "Sam, Claude needs your permission to use WebFetch", Phrases{Nickname: "Sam"}.ApprovalRequest("WebFetch"))
	assert.Equal(t, "This action requires your attention", Phrases{}.ApprovalRequest(""))
	assert.Equal(t, "Hey Sam, this action requires your attention", Phrases{Nickname: "Sam"}.ApprovalRequest(""))
}

func TestPhrasesTaskSummaryAndCompletion(t *testing.T) {
	t.Parallel()

	task := domain.TaskContext{}
	task.Record(domain.OperationCreated, "a.go")
	task.Record(domain.OperationCreated, "a.go")
	task.Record(domain.OperationModified, "b.go")
	task.Record(domain.OperationModified, "c.go")
	task.Record(domain.OperationCommand, "go test")
	task.Record(domain.OperationSearch, "TODO")
	task.Record(domain.OperationSearch, "FIXME")

	p := Phrases{}
	summary := p.TaskSummary(task)
	assert.Equal(t, "Created 1 file. Modified 2 files. Ran 1 command. Performed 2 searches", summary)
	assert.Equal(t, summary+". Task completed", p.Completion(summary))
	assert.Empty(t, p.TaskSummary(domain.TaskContext{}))
	assert.Empty(t, p.Completion("  "))
	assert.Equal(t, "All good. Task completed, Sam", Phrases{Nickname: "Sam"}.Completion("All good."))
}

func TestPhrasesToolAction(t *testing.T) {
	t.Parallel()

	phrase, ok := Phrases{}.ToolAction("Glob")
	assert.True(t, ok)
	assert.Equal(t, "Finding files", phrase)

	phrase, ok = Phrases{}.ToolAction("TodoWrite")
	assert.True(t, ok)
	assert.Empty(t, phrase)

	_, ok = Phrases{}.ToolAction("Unknown")
	assert.False(t, ok)
}
