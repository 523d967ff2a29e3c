package journal

import (
	"fmt"
	"time"
)

const (
	// TenantDefault is the original single-tenant namespace. Its entry ids
	// are bare dates for backward compatibility with the oldest records.
	TenantDefault = "default"

	// TenantMulti tags the synthetic cross-tenant merged entry. Entries
	// carrying it are never persisted as-is; saving goes through the
	// per-project-tenant partition path.
	TenantMulti = "MULTI"
)

// EntryID derives the storage identity for a (tenant, date) pair. It is the
// single source of truth for entry identity; load and save both go through
// it so the two paths can never mint divergent ids for the same day.
func EntryID(tenantID, date string) string {
	if tenantID == TenantDefault {
		return date
	}
	return fmt.Sprintf("%s_%s", tenantID, date)
}

// MergedEntryID is the id of the synthetic superadmin view for a date.
func MergedEntryID(date string) string {
	return fmt.Sprintf("%s_%s", TenantMulti, date)
}

// ProjectStatus is the soft-delete state of a project section.
type ProjectStatus string

const (
	StatusActive ProjectStatus = "active"
	StatusTrash  ProjectStatus = "trash"
)

// NoteBlock is a titled free-text segment within a project's notes.
type NoteBlock struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ProjectEntry is the per-project section embedded in a day's entry.
//
// Notes live in Blocks when present; PMNotes is then a read-mirror of
// blocks[0].content kept in sync on every block mutation so that legacy
// consumers of the single-string field stay correct without a migration.
type ProjectEntry struct {
	Name      string        `json:"name"`
	ProjectID string        `json:"project_id,omitempty"`
	Status    ProjectStatus `json:"status"`
	PMNotes   string        `json:"pm_notes"`
	Blocks    []NoteBlock   `json:"blocks,omitempty"`

	Conclusions string `json:"conclusions,omitempty"`
	NextSteps   string `json:"next_steps,omitempty"`

	// NextWeekTasks is the retired predecessor of NextSteps. Loading fills
	// NextSteps from it when NextSteps is empty but never clears it, so the
	// migration stays non-destructive.
	NextWeekTasks string `json:"next_week_tasks,omitempty"`
}

// Entry is the dated journal record for one tenant.
type Entry struct {
	ID           string         `json:"id"`
	Date         string         `json:"date"`
	TenantID     string         `json:"tenant_id"`
	Projects     []ProjectEntry `json:"projects"`
	GeneralNotes string         `json:"general_notes,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Merged reports whether the entry is the synthetic cross-tenant view.
func (e *Entry) Merged() bool {
	return e.TenantID == TenantMulti
}

// NewEntry constructs the fresh empty entry Load returns when no record
// exists for the requested day.
func NewEntry(tenantID, date string) *Entry {
	now := time.Now()
	return &Entry{
		ID:        EntryID(tenantID, date),
		Date:      date,
		TenantID:  tenantID,
		Projects:  []ProjectEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// migrate applies the legacy-field migration to every project section.
func (e *Entry) migrate() {
	for i := range e.Projects {
		if e.Projects[i].NextSteps == "" {
			e.Projects[i].NextSteps = e.Projects[i].NextWeekTasks
		}
		if e.Projects[i].Status == "" {
			e.Projects[i].Status = StatusActive
		}
	}
}
