package sqlite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ganot/daybook/internal/domain/task"
	"github.com/ganot/daybook/internal/repository"
	"github.com/stretchr/testify/require"
)

func seedTask(t *testing.T, repo *TaskRepository, tenantID, projectID, title string, status task.Status) *task.Task {
	t.Helper()
	ctx := context.Background()

	friendlyID, err := repo.NextFriendlyID(ctx, tenantID, projectID)
	require.NoError(t, err)

	now := time.Now()
	tk := &task.Task{
		ID:         title + "-" + tenantID + "-" + projectID,
		TenantID:   tenantID,
		ProjectID:  projectID,
		FriendlyID: friendlyID,
		Title:      title,
		Status:     status,
		CreatedBy:  "u1",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, repo.Create(ctx, tenantID, tk))
	return tk
}

func TestTaskRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	created := seedTask(t, repo, "tenant1", "p1", "Write report", task.StatusPending)

	got, err := repo.Get(ctx, "tenant1", created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Title, got.Title)
	require.Equal(t, int64(1), got.FriendlyID)
	require.Nil(t, got.EndDate)

	_, err = repo.Get(ctx, "tenant2", created.ID)
	require.ErrorIs(t, err, repository.ErrNotFound, "tasks are tenant scoped")
}

func TestTaskRepository_UpdateMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	err := repo.Update(ctx, "tenant1", &task.Task{ID: "missing", Status: task.StatusPending})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepository_ListFilters(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	seedTask(t, repo, "tenant1", "p1", "A", task.StatusPending)
	seedTask(t, repo, "tenant1", "p1", "B", task.StatusCompleted)
	seedTask(t, repo, "tenant1", "", "C", task.StatusInProgress)
	seedTask(t, repo, "tenant2", "p1", "D", task.StatusPending)

	p1 := "p1"
	got, err := repo.List(ctx, "tenant1", task.ListOptions{ProjectID: &p1})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = repo.List(ctx, "tenant1", task.ListOptions{ExcludeCompleted: true})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, tk := range got {
		require.NotEqual(t, task.StatusCompleted, tk.Status)
	}

	general := ""
	got, err = repo.List(ctx, "tenant1", task.ListOptions{ProjectID: &general})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "C", got[0].Title)
}

func TestTaskRepository_NextFriendlyIDSequence(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	for want := int64(1); want <= 5; want++ {
		got, err := repo.NextFriendlyID(ctx, "tenant1", "p1")
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	// Independent scopes keep independent counters.
	got, err := repo.NextFriendlyID(ctx, "tenant1", "p2")
	require.NoError(t, err)
	require.Equal(t, int64(1), got)

	got, err = repo.NextFriendlyID(ctx, "tenant2", "p1")
	require.NoError(t, err)
	require.Equal(t, int64(1), got)
}

func TestTaskRepository_NextFriendlyIDConcurrent(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	const n = 20
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := repo.NextFriendlyID(ctx, "tenant1", "p1")
			if err == nil {
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		require.False(t, seen[id], "friendly id %d assigned twice", id)
		seen[id] = true
	}
	require.NotEmpty(t, seen)
}
