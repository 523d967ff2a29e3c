package visibility_test

import (
	"testing"

	"github.com/ganot/daybook/internal/domain/directory"
	"github.com/ganot/daybook/internal/domain/identity"
	"github.com/ganot/daybook/internal/domain/journal"
	"github.com/ganot/daybook/internal/domain/task"
	"github.com/ganot/daybook/internal/domain/visibility"
	"github.com/stretchr/testify/require"
)

var testDirectory = []directory.Project{
	{ID: "p1", TenantID: "7", Name: "Acme"},
	{ID: "p2", TenantID: "7", Name: "Globex"},
	{ID: "p3", TenantID: "7", Name: "Initech"},
}

func entryWith(projects ...journal.ProjectEntry) *journal.Entry {
	return &journal.Entry{TenantID: "7", Date: "2024-03-01", Projects: projects}
}

func TestVisibleProjects_PMSeesAll(t *testing.T) {
	entry := entryWith(
		journal.ProjectEntry{Name: "Acme", ProjectID: "p1", Status: journal.StatusActive},
		journal.ProjectEntry{Name: "Unknown", Status: journal.StatusActive},
	)
	pm := identity.User{Role: identity.RoleProjectManager}

	got := visibility.VisibleProjects(entry, pm, testDirectory)
	require.Len(t, got, 2, "pm and above see every section, resolvable or not")
}

func TestVisibleProjects_UserSeesAssignedOnly(t *testing.T) {
	entry := entryWith(
		journal.ProjectEntry{Name: "Acme", ProjectID: "p1", Status: journal.StatusActive},
		journal.ProjectEntry{Name: "Globex", ProjectID: "p2", Status: journal.StatusActive},
		journal.ProjectEntry{Name: "Unknown", Status: journal.StatusActive},
	)
	user := identity.User{Role: identity.RoleUser, AssignedProjectIDs: []string{"p1"}}

	got := visibility.VisibleProjects(entry, user, testDirectory)
	require.Len(t, got, 1)
	require.Equal(t, "Acme", got[0].Name)
}

func TestVisibleProjects_NameFallback(t *testing.T) {
	// Old sections reference projects by name only.
	entry := entryWith(journal.ProjectEntry{Name: "  GLOBEX ", Status: journal.StatusActive})
	user := identity.User{Role: identity.RoleUser, AssignedProjectIDs: []string{"p2"}}

	got := visibility.VisibleProjects(entry, user, testDirectory)
	require.Len(t, got, 1)
}

func TestVisibleProjects_TrashDropped(t *testing.T) {
	entry := entryWith(
		journal.ProjectEntry{Name: "Acme", ProjectID: "p1", Status: journal.StatusTrash},
	)
	pm := identity.User{Role: identity.RoleProjectManager}

	require.Empty(t, visibility.VisibleProjects(entry, pm, testDirectory))
}

func TestVisibleProjects_NoAssignments(t *testing.T) {
	entry := entryWith(journal.ProjectEntry{Name: "Acme", ProjectID: "p1", Status: journal.StatusActive})
	user := identity.User{Role: identity.RoleUser}

	require.Empty(t, visibility.VisibleProjects(entry, user, testDirectory))
}

func TestVisibleTasks_ProjectTabPassthrough(t *testing.T) {
	tasks := []task.Task{{ID: "a", ProjectID: "p1"}, {ID: "b", ProjectID: "p1"}}
	got := visibility.VisibleTasks(
		visibility.Tab{Kind: visibility.TabProject, ProjectID: "p1"},
		tasks, nil, identity.User{}, nil)
	require.Equal(t, tasks, got)
}

func TestVisibleTasks_GeneralTabExcludesGhosts(t *testing.T) {
	// Today's entry only mentions Acme; the Globex task was visible on a
	// previous day but must not leak through today.
	entry := entryWith(journal.ProjectEntry{Name: "Acme", ProjectID: "p1", Status: journal.StatusActive})
	pm := identity.User{Role: identity.RoleProjectManager}

	tasks := []task.Task{
		{ID: "a", ProjectID: "p1"},
		{ID: "ghost", ProjectID: "p2"},
		{ID: "general"},
	}

	got := visibility.VisibleTasks(visibility.Tab{Kind: visibility.TabGeneral}, tasks, entry, pm, testDirectory)
	require.Len(t, got, 2)
	ids := []string{got[0].ID, got[1].ID}
	require.Contains(t, ids, "a")
	require.Contains(t, ids, "general", "projectless tasks always belong to the general tab")
}

func TestVisibleTasks_GeneralTabTrashedAndAbsentProjects(t *testing.T) {
	// The entry mentions Acme (active) and Globex (trashed); Initech has
	// open tasks but no section today. Only Acme's tasks survive, alongside
	// the projectless one.
	entry := entryWith(
		journal.ProjectEntry{Name: "Acme", ProjectID: "p1", Status: journal.StatusActive},
		journal.ProjectEntry{Name: "Globex", ProjectID: "p2", Status: journal.StatusTrash},
	)
	pm := identity.User{Role: identity.RoleProjectManager}

	tasks := []task.Task{
		{ID: "a1", ProjectID: "p1"},
		{ID: "a2", ProjectID: "p1"},
		{ID: "trashed", ProjectID: "p2"},
		{ID: "absent", ProjectID: "p3"},
		{ID: "general"},
	}

	got := visibility.VisibleTasks(visibility.Tab{Kind: visibility.TabGeneral}, tasks, entry, pm, testDirectory)
	require.Len(t, got, 3)
	var ids []string
	for _, tk := range got {
		ids = append(ids, tk.ID)
	}
	require.ElementsMatch(t, []string{"a1", "a2", "general"}, ids,
		"trashed sections hide their tasks exactly like absent ones")
}

func TestVisibleTasks_GeneralTabRespectsAssignment(t *testing.T) {
	entry := entryWith(
		journal.ProjectEntry{Name: "Acme", ProjectID: "p1", Status: journal.StatusActive},
		journal.ProjectEntry{Name: "Globex", ProjectID: "p2", Status: journal.StatusActive},
	)
	user := identity.User{Role: identity.RoleUser, AssignedProjectIDs: []string{"p1"}}

	tasks := []task.Task{
		{ID: "a", ProjectID: "p1"},
		{ID: "b", ProjectID: "p2"},
	}

	got := visibility.VisibleTasks(visibility.Tab{Kind: visibility.TabGeneral}, tasks, entry, user, testDirectory)
	require.Len(t, got, 1)
	require.Equal(t, "a", got[0].ID)
}

func TestVisibleTasks_NilEntry(t *testing.T) {
	tasks := []task.Task{{ID: "a", ProjectID: "p1"}, {ID: "general"}}
	got := visibility.VisibleTasks(visibility.Tab{Kind: visibility.TabGeneral}, tasks, nil, identity.User{}, testDirectory)
	require.Len(t, got, 1)
	require.Equal(t, "general", got[0].ID)
}
