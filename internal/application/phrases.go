package application

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bnema/voicehook/internal/domain"
)

var toolActionPhrases = map[string]string{
	"Read":         "Reading",
	"NotebookRead": "Reading notebook",
	"Edit":         "Editing",
	"MultiEdit":    "Editing",
	"Write":        "Writing",
	"NotebookEdit": "Editing notebook",
	"Grep":         "Searching",
	"Glob":         "Finding files",
	"LS":           "Listing",
	"Bash":         "Running",
	"Task":         "Starting task",
	"WebFetch":     "Fetching",
	"WebSearch":    "Searching",
	"TodoWrite":    "",
	"ExitPlanMode": "",
}

var approvalActions = map[string]string{
	"Edit":         "edit a file",
	"Write":        "write a file",
	"MultiEdit":    "edit multiple sections",
	"NotebookEdit": "edit a notebook",
	"Bash":         "run a command",
}

var fileKinds = map[string]string{
	"py":   "Python file",
	"js":   "JavaScript file",
	"ts":   "TypeScript file",
	"tsx":  "TypeScript file",
	"json": "JSON file",
	"md":   "markdown file",
	"txt":  "text file",
	"yaml": "YAML file",
	"yml":  "YAML file",
	"toml": "TOML file",
	"html": "HTML file",
	"css":  "CSS file",
	"sh":   "shell script",
	"sql":  "SQL file",
	"go":   "Go file",
	"rs":   "Rust file",
	"java": "Java file",
	"c":    "C file",
	"h":    "header file",
	"cpp":  "C++ file",
	"rb":   "Ruby file",
}

var sourceExtensions = map[string]struct{}{
	"py": {}, "js": {}, "ts": {}, "jsx": {}, "tsx": {}, "java": {}, "cpp": {}, "c": {},
	"go": {}, "rs": {}, "rb": {}, "php": {}, "swift": {}, "kt": {}, "scala": {},
}

var todoVerbs = []struct {
	prefix string
	past   string
}{
	{prefix: "add ", past: "Added"},
	{prefix: "modify ", past: "Modified"},
	{prefix: "update ", past: "Updated"},
	{prefix: "create ", past: "Created"},
	{prefix: "fix ", past: "Fixed"},
	{prefix: "test ", past: "Tested"},
	{prefix: "examine ", past: "Examined"},
}

// Phrases builds the fixed announcement strings. Nickname is optional.
type Phrases struct {
	Nickname string
}

func (p Phrases) Acknowledgement() string {
	if p.Nickname != "" {
		return fmt.Sprintf("Got it, %s. Processing your request", p.Nickname)
	}

	return "Processing your request"
}

// Completion wraps a summary of finished work; it returns "" for an empty summary.
func (p Phrases) Completion(summary string) string {
	summary = strings.TrimRight(strings.TrimSpace(summary), ".")
	if summary == "" {
		return ""
	}
	if p.Nickname != "" {
		return fmt.Sprintf("%s. Task completed, %s", summary, p.Nickname)
	}

	return summary + ". Task completed"
}

func (p Phrases) ApprovalRequest(tool string) string {
	tool = strings.TrimSpace(tool)
	if tool == "" {
		if p.Nickname != "" {
			return fmt.Sprintf("Hey %s, this action requires your attention", p.Nickname)
		}
		return "This action requires your attention"
	}

	action, ok := approvalActions[tool]
	if !ok {
		action = "use " + tool
	}
	if p.Nickname != "" {
		return fmt.Sprintf("%s, Claude needs your permission to %s", p.Nickname, action)
	}

	return "Claude needs your permission to " + action
}

func (p Phrases) TodoCompleted(task string) string {
	task = strings.TrimSpace(task)
	lower := strings.ToLower(task)
	for _, verb := range todoVerbs {
		if strings.HasPrefix(lower, verb.prefix) {
			return verb.past + " " + task[len(verb.prefix):]
		}
	}

	return "Completed: " + task
}

func (p Phrases) Reading(path string) string {
	base := filepath.Base(path)
	ext := extension(base)
	if _, ok := sourceExtensions[ext]; ok {
		return "Reading " + strings.TrimSuffix(base, filepath.Ext(base))
	}

	return "Reading " + base
}

func (p Phrases) Editing(path string) string {
	base := filepath.Base(path)
	ext := extension(base)
	if ext == "" {
		return "Editing " + base
	}

	kind, ok := fileKinds[ext]
	if !ok {
		kind = ext + " file"
	}

	return fmt.Sprintf("Editing %s %s", kind, strings.TrimSuffix(base, filepath.Ext(base)))
}

// ToolAction returns the spoken phrase for tool and whether the tool is known.
// Known tools may map to "" meaning they stay silent.
func (p Phrases) ToolAction(tool string) (string, bool) {
	phrase, ok := toolActionPhrases[tool]
	return phrase, ok
}

// TaskSummary describes the work recorded in the task context, or "" when nothing
// was recorded.
func (p Phrases) TaskSummary(task domain.TaskContext) string {
	if task.IsEmpty() {
		return ""
	}

	parts := []string{}
	if n := task.UniqueCreated(); n > 0 {
		parts = append(parts, "Created "+plural(n, "file", "files"))
	}
	if n := task.UniqueModified(); n > 0 {
		parts = append(parts, "Modified "+plural(n, "file", "files"))
	}
	if n := len(task.CommandsRun); n > 0 {
		parts = append(parts, "Ran "+plural(n, "command", "commands"))
	}
	if n := len(task.SearchesPerformed); n > 0 {
		parts = append(parts, "Performed "+plural(n, "search", "searches"))
	}

	return strings.Join(parts, ". ")
}

func extension(base string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}

	return fmt.Sprintf("%d %s", n, many)
}
