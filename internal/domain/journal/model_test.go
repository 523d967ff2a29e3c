package journal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntryID(t *testing.T) {
	require.Equal(t, "2024-03-01", EntryID(TenantDefault, "2024-03-01"))
	require.Equal(t, "7_2024-03-01", EntryID("7", "2024-03-01"))
	require.Equal(t, "MULTI_2024-03-01", MergedEntryID("2024-03-01"))

	// Distinct tenants never collide on the same date.
	require.NotEqual(t, EntryID("7", "2024-03-01"), EntryID("9", "2024-03-01"))
	require.NotEqual(t, EntryID(TenantDefault, "2024-03-01"), EntryID("7", "2024-03-01"))
}

func TestEntryMigrateNextSteps(t *testing.T) {
	e := &Entry{
		Projects: []ProjectEntry{
			{Name: "A", NextWeekTasks: "old field"},
			{Name: "B", NextSteps: "keep me", NextWeekTasks: "ignore me"},
		},
	}
	e.migrate()

	require.Equal(t, "old field", e.Projects[0].NextSteps)
	require.Equal(t, "old field", e.Projects[0].NextWeekTasks, "legacy field is never cleared")
	require.Equal(t, "keep me", e.Projects[1].NextSteps)
	require.Equal(t, StatusActive, e.Projects[0].Status, "missing status defaults to active")
}

func TestEntryMerged(t *testing.T) {
	require.True(t, (&Entry{TenantID: TenantMulti}).Merged())
	require.False(t, (&Entry{TenantID: "7"}).Merged())
}

func TestNewEntry(t *testing.T) {
	e := NewEntry("7", "2024-03-01")
	require.Equal(t, "7_2024-03-01", e.ID)
	require.NotNil(t, e.Projects)
	require.Empty(t, e.Projects)
	require.False(t, e.CreatedAt.IsZero())
}
