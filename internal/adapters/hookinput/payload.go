// Package hookinput decodes the JSON document the hook host writes to stdin.
package hookinput

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/voicehook/internal/domain"
	"github.com/tidwall/gjson"
)

const maxPayloadSize = 8 << 20

var (
	filePathKeys = []string{"tool_input.file_path", "tool_input.notebook_path", "tool_input.path"}
	queryKeys    = []string{"tool_input.query", "tool_input.pattern"}
	outputKeys   = []string{"tool_output", "tool_response"}
)

// Read consumes r and decodes it. An empty or non-JSON document yields a nil
// payload without error so hooks can still run from flags alone.
func Read(r io.Reader) (*domain.HookPayload, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("read hook input: %w", err)
	}

	return Parse(data), nil
}

func Parse(data []byte) *domain.HookPayload {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return nil
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil
	}

	payload := &domain.HookPayload{
		SessionID:      doc.Get("session_id").String(),
		TranscriptPath: doc.Get("transcript_path").String(),
		ToolName:       doc.Get("tool_name").String(),
		Command:        doc.Get("tool_input.command").String(),
		FilePath:       firstString(doc, filePathKeys),
		Query:          firstString(doc, queryKeys),
		Message:        doc.Get("message").String(),
	}

	for _, key := range outputKeys {
		if output := doc.Get(key); output.Exists() {
			payload.ToolOutput = output.String()
			if output.IsObject() || output.IsArray() {
				payload.ToolOutput = output.Raw
			}
			break
		}
	}

	if todos := doc.Get("tool_input.todos"); todos.IsArray() {
		payload.HasTodos = true
		payload.Todos = parseTodos(todos)
	}

	return payload
}

func parseTodos(todos gjson.Result) domain.TodoSnapshot {
	snapshot := domain.TodoSnapshot{}
	todos.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		content := item.Get("content").String()
		id := item.Get("id").String()
		if id == "" {
			id = content
		}
		if id == "" {
			return true
		}
		snapshot = append(snapshot, domain.TodoItem{
			ID:      id,
			Status:  domain.TodoStatus(strings.ToLower(item.Get("status").String())),
			Content: content,
		})
		return true
	})

	return snapshot
}

func firstString(doc gjson.Result, keys []string) string {
	for _, key := range keys {
		if value := doc.Get(key).String(); value != "" {
			return value
		}
	}

	return ""
}
