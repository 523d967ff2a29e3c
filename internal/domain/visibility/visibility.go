// Package visibility computes, from role and project assignment, the subset
// of projects and tasks a user may see. Pure functions, no I/O: callers pass
// the entry, the task list, and the global directory in.
package visibility

import (
	"github.com/ganot/daybook/internal/domain/directory"
	"github.com/ganot/daybook/internal/domain/identity"
	"github.com/ganot/daybook/internal/domain/journal"
	"github.com/ganot/daybook/internal/domain/task"
)

// TabKind identifies which view the user is on.
type TabKind string

const (
	// TabProject is a specific project's tab; its task list is already
	// scoped by the store subscription.
	TabProject TabKind = "project"
	// TabGeneral is the tenant-wide view; tasks are narrowed to projects
	// actually present in today's entry.
	TabGeneral TabKind = "general"
)

// Tab is the active view selection.
type Tab struct {
	Kind      TabKind
	ProjectID string
}

// VisibleProjects filters an entry's project sections down to what the user
// may see: trashed sections are dropped, and below the project-manager level
// only sections resolving to an assigned global project remain.
func VisibleProjects(entry *journal.Entry, user identity.User, globalProjects []directory.Project) []journal.ProjectEntry {
	if entry == nil {
		return nil
	}

	idx := directory.NewIndex(globalProjects)
	out := make([]journal.ProjectEntry, 0, len(entry.Projects))
	for _, pe := range entry.Projects {
		if pe.Status == journal.StatusTrash {
			continue
		}
		if user.Role.AtLeast(identity.RoleProjectManager) {
			out = append(out, pe)
			continue
		}
		proj, ok := idx.Resolve(pe.ProjectID, pe.Name)
		if !ok {
			continue
		}
		if user.Assigned(proj.ID) {
			out = append(out, pe)
		}
	}
	return out
}

// VisibleTasks narrows a task list to what the user may see on the active
// tab. A project tab passes through unchanged. The general tab recomputes
// the project ids legitimately present in today's entry and keeps only
// tasks inside that set, so tasks from a project that was visible yesterday
// but is absent today never leak through. General tasks with no project
// always belong to the general tab.
func VisibleTasks(tab Tab, tasks []task.Task, entry *journal.Entry, user identity.User, globalProjects []directory.Project) []task.Task {
	if tab.Kind == TabProject {
		return tasks
	}

	allowed := allowedProjectIDs(entry, user, globalProjects)
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ProjectID == "" {
			out = append(out, t)
			continue
		}
		if _, ok := allowed[t.ProjectID]; ok {
			out = append(out, t)
		}
	}
	return out
}

// allowedProjectIDs resolves the visible project sections of the entry to
// global project ids.
func allowedProjectIDs(entry *journal.Entry, user identity.User, globalProjects []directory.Project) map[string]struct{} {
	allowed := map[string]struct{}{}
	if entry == nil {
		return allowed
	}

	idx := directory.NewIndex(globalProjects)
	for _, pe := range VisibleProjects(entry, user, globalProjects) {
		proj, ok := idx.Resolve(pe.ProjectID, pe.Name)
		if !ok {
			continue
		}
		allowed[proj.ID] = struct{}{}
	}
	return allowed
}
