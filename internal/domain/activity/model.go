package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeEntrySaved         ActivityType = "entry_saved"
	TypeEntryPartialSave   ActivityType = "entry_partial_save"
	TypeTaskCreated        ActivityType = "task_created"
	TypeTaskStatusChanged  ActivityType = "task_status_changed"
	TypeTaskBlockToggled   ActivityType = "task_block_toggled"
	TypeTaskReopened       ActivityType = "task_reopened"
	TypeSuggestionAccepted ActivityType = "suggestion_accepted"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	TenantID     string       `json:"tenant_id"`
	ActorID      string       `json:"actor_id"`
	ProjectID    string       `json:"project_id,omitempty"`
	TaskID       *string      `json:"task_id,omitempty"`
	EntryID      *string      `json:"entry_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	CreatedAt    time.Time    `json:"created_at"`
}
