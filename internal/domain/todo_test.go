package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTodoSnapshotCompletions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		previous TodoSnapshot
		next     TodoSnapshot
		want     []string
	}{
		{
			name:     "pending to completed",
			previous: TodoSnapshot{{ID: "1", Status: TodoPending}},
			next:     TodoSnapshot{{ID: "1", Status: TodoCompleted, Content: "fix bug"}},
			want:     []string{"fix bug"},
		},
		{
			name:     "already completed is not reported again",
			previous: TodoSnapshot{{ID: "1", Status: TodoCompleted, Content: "fix bug"}},
			next:     TodoSnapshot{{ID: "1", Status: TodoCompleted, Content: "fix bug"}},
			want:     []string{},
		},
		{
			name:     "first appearance as completed is ignored",
			previous: TodoSnapshot{},
			next:     TodoSnapshot{{ID: "9", Status: TodoCompleted, Content: "new"}},
			want:     []string{},
		},
		{
			name: "keeps next order",
			previous: TodoSnapshot{
				{ID: "a", Status: TodoInProgress},
				{ID: "b", Status: TodoPending},
			},
			next: TodoSnapshot{
				{ID: "b", Status: TodoCompleted, Content: "second"},
				{ID: "a", Status: TodoCompleted, Content: "first"},
			},
			want: []string{"second", "first"},
		},
		{
			name:     "empty content falls back to task",
			previous: TodoSnapshot{{ID: "1", Status: TodoPending}},
			next:     TodoSnapshot{{ID: "1", Status: "Completed"}},
			want:     []string{"task"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.previous.Completions(tc.next))
		})
	}
}
