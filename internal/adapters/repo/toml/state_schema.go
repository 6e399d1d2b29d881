package toml

import (
	"fmt"
	"time"

	"github.com/bnema/voicehook/internal/domain"
)

const currentStateSchemaVersion = 1

type stateFileSchema struct {
	Version                 int                        `toml:"version"`
	LastSpeechTime          float64                    `toml:"last_speech_time"`
	InitialSummaryAnnounced bool                       `toml:"initial_summary_announced"`
	CurrentSessionID        string                     `toml:"current_session_id,omitempty"`
	LastAnnouncement        string                     `toml:"last_announcement,omitempty"`
	TaskContext             taskContextSchema          `toml:"task_context"`
	LastTodos               []todoSchema               `toml:"last_todos,omitempty"`
	TranscriptPositions     map[string]cursorSchema    `toml:"transcript_positions,omitempty"`
	ToolAnnouncements       map[string]float64         `toml:"tool_announcements,omitempty"`
	RecentAnnouncements     []recentAnnouncementSchema `toml:"recent_announcements,omitempty"`
}

func (s *stateFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentStateSchemaVersion
	}
}

func (s stateFileSchema) validateVersion() error {
	if s.Version > currentStateSchemaVersion {
		return fmt.Errorf("unsupported state schema version %d (current %d)", s.Version, currentStateSchemaVersion)
	}

	return nil
}

type taskContextSchema struct {
	FilesCreated      []string `toml:"files_created"`
	FilesModified     []string `toml:"files_modified"`
	CommandsRun       []string `toml:"commands_run"`
	SearchesPerformed []string `toml:"searches_performed"`
	StartTime         float64  `toml:"start_time"`
	OperationsCount   int      `toml:"operations_count"`
}

type todoSchema struct {
	ID      string `toml:"id"`
	Status  string `toml:"status"`
	Content string `toml:"content"`
}

type cursorSchema struct {
	Offset    int64  `toml:"offset"`
	SessionID string `toml:"session_id,omitempty"`
}

type recentAnnouncementSchema struct {
	Fingerprint string  `toml:"fingerprint"`
	At          float64 `toml:"at"`
}

func toStateSchema(state domain.SharedState) stateFileSchema {
	file := stateFileSchema{
		Version:                 currentStateSchemaVersion,
		LastSpeechTime:          domain.EpochSeconds(state.LastSpeechTime),
		InitialSummaryAnnounced: state.InitialSummaryAnnounced,
		CurrentSessionID:        state.CurrentSessionID,
		LastAnnouncement:        state.LastAnnouncement,
		TaskContext: taskContextSchema{
			FilesCreated:      nonNil(state.TaskContext.FilesCreated),
			FilesModified:     nonNil(state.TaskContext.FilesModified),
			CommandsRun:       nonNil(state.TaskContext.CommandsRun),
			SearchesPerformed: nonNil(state.TaskContext.SearchesPerformed),
			StartTime:         domain.EpochSeconds(state.TaskContext.StartedAt),
			OperationsCount:   state.TaskContext.OperationsCount,
		},
	}

	for _, item := range state.LastTodos {
		file.LastTodos = append(file.LastTodos, todoSchema{ID: item.ID, Status: string(item.Status), Content: item.Content})
	}
	if len(state.TranscriptPositions) > 0 {
		file.TranscriptPositions = make(map[string]cursorSchema, len(state.TranscriptPositions))
		for path, cursor := range state.TranscriptPositions {
			file.TranscriptPositions[path] = cursorSchema{Offset: cursor.Offset, SessionID: cursor.SessionID}
		}
	}
	if len(state.ToolAnnouncements) > 0 {
		file.ToolAnnouncements = make(map[string]float64, len(state.ToolAnnouncements))
		for tool, at := range state.ToolAnnouncements {
			file.ToolAnnouncements[tool] = domain.EpochSeconds(at)
		}
	}
	for _, entry := range state.RecentAnnouncements {
		file.RecentAnnouncements = append(file.RecentAnnouncements, recentAnnouncementSchema{
			Fingerprint: entry.Fingerprint,
			At:          domain.EpochSeconds(entry.At),
		})
	}

	return file
}

func fromStateSchema(file stateFileSchema) domain.SharedState {
	state := domain.SharedState{
		TaskContext: domain.TaskContext{
			FilesCreated:      nilIfEmpty(file.TaskContext.FilesCreated),
			FilesModified:     nilIfEmpty(file.TaskContext.FilesModified),
			CommandsRun:       nilIfEmpty(file.TaskContext.CommandsRun),
			SearchesPerformed: nilIfEmpty(file.TaskContext.SearchesPerformed),
			OperationsCount:   file.TaskContext.OperationsCount,
			StartedAt:         domain.FromEpochSeconds(file.TaskContext.StartTime),
		},
		LastSpeechTime:          domain.FromEpochSeconds(file.LastSpeechTime),
		InitialSummaryAnnounced: file.InitialSummaryAnnounced,
		CurrentSessionID:        file.CurrentSessionID,
		LastAnnouncement:        file.LastAnnouncement,
		TranscriptPositions:     make(map[string]domain.TranscriptCursor, len(file.TranscriptPositions)),
		ToolAnnouncements:       make(map[string]time.Time, len(file.ToolAnnouncements)),
	}

	for _, item := range file.LastTodos {
		state.LastTodos = append(state.LastTodos, domain.TodoItem{ID: item.ID, Status: domain.TodoStatus(item.Status), Content: item.Content})
	}
	for path, cursor := range file.TranscriptPositions {
		if cursor.Offset < 0 {
			continue
		}
		state.TranscriptPositions[path] = domain.TranscriptCursor{Offset: cursor.Offset, SessionID: cursor.SessionID}
	}
	for tool, at := range file.ToolAnnouncements {
		state.ToolAnnouncements[tool] = domain.FromEpochSeconds(at)
	}
	for _, entry := range file.RecentAnnouncements {
		state.RecentAnnouncements = append(state.RecentAnnouncements, domain.RecentAnnouncement{
			Fingerprint: entry.Fingerprint,
			At:          domain.FromEpochSeconds(entry.At),
		})
	}

	return state
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}

func nilIfEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	return values
}
