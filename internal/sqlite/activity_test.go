package sqlite

import (
	"context"
	"testing"

	"github.com/ganot/daybook/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogAndList(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()

	entry := &activity.ActivityEntry{
		ActorID:      "u1",
		ProjectID:    "p1",
		ActivityType: activity.TypeTaskCreated,
		Summary:      "created task #1",
	}
	require.NoError(t, repo.Log(ctx, "tenant1", entry))
	require.NotZero(t, entry.ID)
	require.False(t, entry.CreatedAt.IsZero())

	got, err := repo.List(ctx, "tenant1", activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, activity.TypeTaskCreated, got[0].ActivityType)

	got, err = repo.List(ctx, "tenant2", activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestActivityRepository_ListFilters(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Log(ctx, "tenant1", &activity.ActivityEntry{
		ProjectID: "p1", ActivityType: activity.TypeTaskCreated, Summary: "a",
	}))
	require.NoError(t, repo.Log(ctx, "tenant1", &activity.ActivityEntry{
		ProjectID: "p2", ActivityType: activity.TypeEntrySaved, Summary: "b",
	}))

	got, err := repo.List(ctx, "tenant1", activity.ListActivityOptions{ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "a", got[0].Summary)

	kind := activity.TypeEntrySaved
	got, err = repo.List(ctx, "tenant1", activity.ListActivityOptions{ActivityType: &kind})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "b", got[0].Summary)
}
