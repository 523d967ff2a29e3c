package activity_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/ganot/daybook/internal/domain/activity"
	"github.com/ganot/daybook/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLogActivity_StampsCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("Log", ctx, "tenant1", mock.Anything).Return(nil)

	svc := activity.NewService(repo, testLogger())
	entry := &activity.ActivityEntry{ActivityType: activity.TypeTaskCreated, Summary: "created"}
	require.NoError(t, svc.LogActivity(ctx, "tenant1", entry))
	require.False(t, entry.CreatedAt.IsZero())
}

func TestLogActivity_Validation(t *testing.T) {
	svc := activity.NewService(&mocks.ActivityRepository{}, testLogger())

	require.ErrorIs(t, svc.LogActivity(context.Background(), "tenant1", nil), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(context.Background(), "", &activity.ActivityEntry{
		ActivityType: activity.TypeEntrySaved,
	}), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(context.Background(), "tenant1", &activity.ActivityEntry{
		Summary: "typeless",
	}), activity.ErrInvalidInput)
}

func TestGetRecentActivity(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	opts := activity.ListActivityOptions{ProjectID: "p1", Limit: 10}
	repo.On("List", ctx, "tenant1", opts).Return([]activity.ActivityEntry{{Summary: "x"}}, nil)

	svc := activity.NewService(repo, testLogger())
	got, err := svc.GetRecentActivity(ctx, "tenant1", opts)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestGetRecentActivity_RequiresTenant(t *testing.T) {
	svc := activity.NewService(&mocks.ActivityRepository{}, testLogger())
	_, err := svc.GetRecentActivity(context.Background(), "  ", activity.ListActivityOptions{})
	require.ErrorIs(t, err, activity.ErrInvalidInput)
}
