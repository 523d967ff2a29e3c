package mcp

import (
	"testing"
	"time"

	"github.com/ganot/daybook/internal/domain/task"
	"github.com/stretchr/testify/require"
)

func TestTaskViews_OverdueAnnotation(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tasks := []task.Task{
		{ID: "late", Status: task.StatusInProgress, EndDate: &past},
		{ID: "done-late", Status: task.StatusCompleted, EndDate: &past},
		{ID: "on-track", Status: task.StatusPending, EndDate: &future},
		{ID: "open-ended", Status: task.StatusPending},
	}

	views := taskViews(tasks, now)
	require.Len(t, views, 4)

	byID := map[string]TaskView{}
	for _, v := range views {
		byID[v.ID] = v
	}
	require.True(t, byID["late"].Overdue)
	require.False(t, byID["done-late"].Overdue, "completed tasks are never overdue")
	require.False(t, byID["on-track"].Overdue)
	require.False(t, byID["open-ended"].Overdue, "no end date means no deadline")
}

func TestTaskViews_Empty(t *testing.T) {
	views := taskViews(nil, time.Now())
	require.NotNil(t, views)
	require.Empty(t, views)
}
