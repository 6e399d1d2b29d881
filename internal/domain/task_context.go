package domain

import "time"

type OperationKind string

const (
	OperationCreated  OperationKind = "created"
	OperationModified OperationKind = "modified"
	OperationCommand  OperationKind = "command"
	OperationSearch   OperationKind = "search"
)

// OperationKindForTool maps a tool name to the bucket its operations are recorded in.
func OperationKindForTool(tool string) (OperationKind, bool) {
	switch tool {
	case "Write":
		return OperationCreated, true
	case "Edit", "MultiEdit":
		return OperationModified, true
	case "Bash":
		return OperationCommand, true
	case "Grep", "Glob", "WebSearch":
		return OperationSearch, true
	default:
		return "", false
	}
}

type TaskContext struct {
	FilesCreated      []string
	FilesModified     []string
	CommandsRun       []string
	SearchesPerformed []string
	OperationsCount   int
	StartedAt         time.Time
}

func NewTaskContext(now time.Time) TaskContext {
	return TaskContext{StartedAt: now}
}

// Record counts the operation and keeps the subject in the bucket for kind.
// Unknown kinds and empty subjects only bump the counter.
func (c *TaskContext) Record(kind OperationKind, subject string) {
	c.OperationsCount++
	if subject == "" {
		return
	}

	switch kind {
	case OperationCreated:
		c.FilesCreated = append(c.FilesCreated, subject)
	case OperationModified:
		c.FilesModified = append(c.FilesModified, subject)
	case OperationCommand:
		c.CommandsRun = append(c.CommandsRun, subject)
	case OperationSearch:
		c.SearchesPerformed = append(c.SearchesPerformed, subject)
	}
}

func (c TaskContext) IsEmpty() bool {
	return c.OperationsCount == 0
}

func (c TaskContext) UniqueCreated() int {
	return countUnique(c.FilesCreated)
}

func (c TaskContext) UniqueModified() int {
	return countUnique(c.FilesModified)
}

func countUnique(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		seen[value] = struct{}{}
	}

	return len(seen)
}
