package domain

import "strings"

type TodoStatus string

const (
	TodoPending    TodoStatus = "pending"
	TodoInProgress TodoStatus = "in_progress"
	TodoCompleted  TodoStatus = "completed"
)

type TodoItem struct {
	ID      string
	Status  TodoStatus
	Content string
}

func (i TodoItem) normalizedStatus() TodoStatus {
	status := TodoStatus(strings.ToLower(strings.TrimSpace(string(i.Status))))
	if status == "" {
		return TodoPending
	}

	return status
}

type TodoSnapshot []TodoItem

// Completions returns, in next's order, the descriptions of items that moved from
// any other status to completed. Items with no previous record are never reported.
func (s TodoSnapshot) Completions(next TodoSnapshot) []string {
	previous := make(map[string]TodoItem, len(s))
	for _, item := range s {
		previous[item.ID] = item
	}

	completed := []string{}
	for _, item := range next {
		old, ok := previous[item.ID]
		if !ok {
			continue
		}
		if old.normalizedStatus() == TodoCompleted || item.normalizedStatus() != TodoCompleted {
			continue
		}

		description := strings.TrimSpace(item.Content)
		if description == "" {
			description = "task"
		}
		completed = append(completed, description)
	}

	return completed
}

func (s TodoSnapshot) Clone() TodoSnapshot {
	if s == nil {
		return nil
	}

	return append(TodoSnapshot(nil), s...)
}
