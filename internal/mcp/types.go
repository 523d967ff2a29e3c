package mcp

import (
	"time"

	"github.com/ganot/daybook/internal/domain/activity"
	"github.com/ganot/daybook/internal/domain/journal"
	"github.com/ganot/daybook/internal/domain/suggestion"
	"github.com/ganot/daybook/internal/domain/task"
)

type GetEntryParams struct {
	Date string `json:"date" jsonschema:"the calendar date, YYYY-MM-DD"`
}

type GetMergedEntryParams struct {
	Date string `json:"date" jsonschema:"the calendar date, YYYY-MM-DD"`
	// TenantIDs lists the candidate tenants; empty means every tenant with
	// a project in the directory.
	TenantIDs []string `json:"tenant_ids,omitempty"`
}

type EntryResponse struct {
	Entry           *journal.Entry         `json:"entry"`
	VisibleProjects []journal.ProjectEntry `json:"visible_projects"`
}

type SaveEntryParams struct {
	Entry journal.Entry `json:"entry"`
}

type SaveEntryResponse struct {
	SavedTenants []string `json:"saved_tenants"`
}

type UpdateBlockParams struct {
	Date         string `json:"date"`
	ProjectIndex int    `json:"project_index"`
	BlockID      string `json:"block_id"`
	Field        string `json:"field" jsonschema:"title or content"`
	Value        string `json:"value"`
}

type CreateProjectParams struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type ListProjectsParams struct {
	// TenantFilter defaults to the caller's tenant; "ALL" is superadmin only.
	TenantFilter string `json:"tenant_filter,omitempty"`
}

type CreateTaskParams struct {
	ProjectID   string     `json:"project_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsBlocking  bool       `json:"is_blocking,omitempty"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	EntryDate   string     `json:"entry_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type UpdateTaskStatusParams struct {
	ID     string      `json:"id"`
	Status task.Status `json:"status"`
}

type ToggleTaskBlockParams struct {
	ID         string `json:"id"`
	IsBlocking bool   `json:"is_blocking"`
}

type ListTasksParams struct {
	// ProjectID selects a project tab; empty means the general view of
	// open tasks narrowed to today's entry.
	ProjectID string `json:"project_id,omitempty"`
	// Date anchors the general view's ghost-task filter; defaults to today.
	Date string `json:"date,omitempty"`
}

// TaskView is a task annotated for presentation.
type TaskView struct {
	task.Task
	// Overdue marks an unfinished task whose end date has passed.
	Overdue bool `json:"overdue"`
}

type TaskListResponse struct {
	Tasks []TaskView `json:"tasks"`
}

func taskViews(tasks []task.Task, now time.Time) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, TaskView{Task: t, Overdue: t.Overdue(now)})
	}
	return views
}

type SummarizeParams struct {
	Text string `json:"text"`
}

type SuggestionListResponse struct {
	Summary *suggestion.Summary `json:"summary,omitempty"`
	Pending []string            `json:"pending"`
}

type AcceptSuggestionParams struct {
	Text       string `json:"text"`
	IsBlocking bool   `json:"is_blocking,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
	EntryDate  string `json:"entry_date,omitempty"`
}

type DismissSuggestionParams struct {
	Text string `json:"text"`
}

type RecentActivityParams struct {
	ProjectID string `json:"project_id,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

type ActivityListResponse struct {
	Entries []activity.ActivityEntry `json:"entries"`
}
