package mocks

import (
	"context"

	"github.com/ganot/daybook/internal/domain/activity"
	"github.com/ganot/daybook/internal/domain/directory"
	"github.com/ganot/daybook/internal/domain/journal"
	"github.com/ganot/daybook/internal/domain/task"
	"github.com/stretchr/testify/mock"
)

// EntryRepository is a mock for journal.EntryRepository.
type EntryRepository struct {
	mock.Mock
}

func (m *EntryRepository) ListByDate(ctx context.Context, tenantID, date string) ([]journal.Entry, error) {
	args := m.Called(ctx, tenantID, date)
	if entries, ok := args.Get(0).([]journal.Entry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) Put(ctx context.Context, tenantID string, entry *journal.Entry) error {
	args := m.Called(ctx, tenantID, entry)
	return args.Error(0)
}

// TaskRepository is a mock for task.Repository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, tenantID string, t *task.Task) error {
	args := m.Called(ctx, tenantID, t)
	return args.Error(0)
}

func (m *TaskRepository) Get(ctx context.Context, tenantID, id string) (*task.Task, error) {
	args := m.Called(ctx, tenantID, id)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, tenantID string, t *task.Task) error {
	args := m.Called(ctx, tenantID, t)
	return args.Error(0)
}

func (m *TaskRepository) List(ctx context.Context, tenantID string, opts task.ListOptions) ([]task.Task, error) {
	args := m.Called(ctx, tenantID, opts)
	if tasks, ok := args.Get(0).([]task.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) NextFriendlyID(ctx context.Context, tenantID, projectID string) (int64, error) {
	args := m.Called(ctx, tenantID, projectID)
	return args.Get(0).(int64), args.Error(1)
}

// ProjectRepository is a mock for directory.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, tenantID string, proj *directory.Project) error {
	args := m.Called(ctx, tenantID, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, tenantID, id string) (*directory.Project, error) {
	args := m.Called(ctx, tenantID, id)
	if proj, ok := args.Get(0).(*directory.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, tenantID string) ([]directory.Project, error) {
	args := m.Called(ctx, tenantID)
	if list, ok := args.Get(0).([]directory.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, tenantID, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
