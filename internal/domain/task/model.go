package task

import "time"

// Status represents the workflow state of a task
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusBlocked    Status = "blocked"
	StatusCompleted  Status = "completed"
)

// Task represents a discrete work item, optionally tied to a project.
//
// IsBlocking is a risk annotation orthogonal to Status: an open task can be
// blocking without being in the blocked state.
type Task struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	// ProjectID is empty for general (tenant-wide) tasks.
	ProjectID string `json:"project_id,omitempty"`
	// FriendlyID is the human-facing sequential code, gap-free per
	// (tenant, project) scope.
	FriendlyID  int64  `json:"friendly_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status"`
	IsBlocking  bool   `json:"is_blocking"`

	CreatedBy  string `json:"created_by"`
	AssignedTo string `json:"assigned_to,omitempty"`
	// EntryID links back to the journal entry the task originated from.
	// Traceability only; entries and tasks have independent lifecycles.
	EntryID string `json:"entry_id,omitempty"`

	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Overdue reports whether the task's deadline has passed. Only tasks still
// moving through the workflow count; blocked and completed tasks never do.
func (t Task) Overdue(now time.Time) bool {
	if t.EndDate == nil {
		return false
	}
	switch t.Status {
	case StatusPending, StatusInProgress, StatusReview:
		return t.EndDate.Before(now)
	default:
		return false
	}
}
