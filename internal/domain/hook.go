package domain

import (
	"fmt"
	"strings"
)

type HookKind string

const (
	HookUserPromptSubmit HookKind = "UserPromptSubmit"
	HookPreToolUse       HookKind = "PreToolUse"
	HookPostToolUse      HookKind = "PostToolUse"
	HookStop             HookKind = "Stop"
	HookNotification     HookKind = "Notification"
)

var hookKinds = []HookKind{
	HookUserPromptSubmit,
	HookPreToolUse,
	HookPostToolUse,
	HookStop,
	HookNotification,
}

func HookKinds() []HookKind {
	return append([]HookKind(nil), hookKinds...)
}

func ParseHookKind(raw string) (HookKind, error) {
	trimmed := strings.TrimSpace(raw)
	for _, kind := range hookKinds {
		if strings.EqualFold(trimmed, string(kind)) {
			return kind, nil
		}
	}

	return "", fmt.Errorf("%w %q", ErrUnknownHook, raw)
}

// HookPayload is the parsed event body the hook host writes to stdin.
type HookPayload struct {
	SessionID      string
	TranscriptPath string
	ToolName       string
	FilePath       string
	Command        string
	Query          string
	Todos          TodoSnapshot
	HasTodos       bool
	ToolOutput     string
	Message        string
}

type HookEvent struct {
	Kind     HookKind
	ToolName string
	FilePath string
	Command  string
	Query    string
	Message  string
	Payload  *HookPayload
}

// Tool returns the payload tool name when present, falling back to the flag value.
func (e HookEvent) Tool() string {
	if e.Payload != nil && strings.TrimSpace(e.Payload.ToolName) != "" {
		return strings.TrimSpace(e.Payload.ToolName)
	}

	return strings.TrimSpace(e.ToolName)
}

func (e HookEvent) SessionID() string {
	if e.Payload == nil {
		return ""
	}

	return strings.TrimSpace(e.Payload.SessionID)
}

func (e HookEvent) TranscriptPath() string {
	if e.Payload == nil {
		return ""
	}

	return strings.TrimSpace(e.Payload.TranscriptPath)
}

// Path returns the file the tool operates on: the flag value wins over the payload.
func (e HookEvent) Path() string {
	return e.Subject(OperationModified)
}

// Text returns the notification text from the payload, falling back to the flag value.
func (e HookEvent) Text() string {
	if e.Payload != nil && strings.TrimSpace(e.Payload.Message) != "" {
		return strings.TrimSpace(e.Payload.Message)
	}

	return strings.TrimSpace(e.Message)
}

// Subject picks the operation subject for the tool: the flag value wins over the payload.
func (e HookEvent) Subject(kind OperationKind) string {
	pick := func(flag string, payload func(*HookPayload) string) string {
		if strings.TrimSpace(flag) != "" {
			return strings.TrimSpace(flag)
		}
		if e.Payload == nil {
			return ""
		}
		return strings.TrimSpace(payload(e.Payload))
	}

	switch kind {
	case OperationCreated, OperationModified:
		return pick(e.FilePath, func(p *HookPayload) string { return p.FilePath })
	case OperationCommand:
		return pick(e.Command, func(p *HookPayload) string { return p.Command })
	case OperationSearch:
		return pick(e.Query, func(p *HookPayload) string { return p.Query })
	default:
		return ""
	}
}
