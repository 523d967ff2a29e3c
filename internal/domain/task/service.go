package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganot/daybook/internal/domain/activity"
	"github.com/ganot/daybook/internal/repository"
	"github.com/google/uuid"
)

// Service handles task business logic.
type Service struct {
	tasks      Repository
	activities ActivityLogger
	logger     *slog.Logger
	hub        *hub
}

// NewService creates a new task service.
func NewService(tasks Repository, activities ActivityLogger, logger *slog.Logger) *Service {
	return &Service{
		tasks:      tasks,
		activities: activities,
		logger:     logger,
		hub:        newHub(),
	}
}

// CreateRequest describes a task creation request.
type CreateRequest struct {
	ProjectID   string
	Title       string
	Description string
	IsBlocking  bool
	AssignedTo  string
	EntryID     string
	EndDate     *time.Time
}

// Create creates a new task. The friendly id comes from the store's
// transactional counter for the (tenant, project) scope, so concurrent
// creations never skip or collide.
func (s *Service) Create(ctx context.Context, tenantID, actorID string, req CreateRequest) (*Task, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	friendlyID, err := s.tasks.NextFriendlyID(ctx, tenantID, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("assigning friendly id: %w", err)
	}

	now := time.Now()
	t := &Task{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		ProjectID:   req.ProjectID,
		FriendlyID:  friendlyID,
		Title:       req.Title,
		Description: req.Description,
		Status:      StatusPending,
		IsBlocking:  req.IsBlocking,
		CreatedBy:   actorID,
		AssignedTo:  req.AssignedTo,
		EntryID:     req.EntryID,
		EndDate:     req.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, tenantID, t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.logActivity(ctx, tenantID, actorID, t, activity.TypeTaskCreated,
		fmt.Sprintf("created task #%d %q", t.FriendlyID, t.Title))
	s.notify(ctx, tenantID, t.ProjectID)

	return t, nil
}

// Get fetches a task by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Task, error) {
	t, err := s.tasks.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

// UpdateStatus moves a task through the workflow. Requesting the status the
// task already holds is an idempotent success. Invalid transitions are
// rejected; the administrative reopen goes through Reopen instead.
func (s *Service) UpdateStatus(ctx context.Context, tenantID, taskID string, to Status, actorID string) (*Task, error) {
	t, err := s.Get(ctx, tenantID, taskID)
	if err != nil {
		return nil, err
	}
	if t.Status == to {
		return t, nil
	}
	if err := ValidateTransition(t.Status, to); err != nil {
		return nil, err
	}

	from := t.Status
	t.Status = to
	t.UpdatedAt = time.Now()
	if err := s.tasks.Update(ctx, tenantID, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("updating task status: %w", err)
	}

	s.logActivity(ctx, tenantID, actorID, t, activity.TypeTaskStatusChanged,
		fmt.Sprintf("task #%d %s -> %s", t.FriendlyID, from, to))
	s.notify(ctx, tenantID, t.ProjectID)

	return t, nil
}

// ToggleBlock sets the blocking risk flag. The flag has no transition
// restrictions: it annotates risk, not workflow stage, so any status may
// carry it. Setting the value already held is an idempotent success.
func (s *Service) ToggleBlock(ctx context.Context, tenantID, taskID string, isBlocking bool, actorID string) (*Task, error) {
	t, err := s.Get(ctx, tenantID, taskID)
	if err != nil {
		return nil, err
	}
	if t.IsBlocking == isBlocking {
		return t, nil
	}

	t.IsBlocking = isBlocking
	t.UpdatedAt = time.Now()
	if err := s.tasks.Update(ctx, tenantID, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("toggling task block: %w", err)
	}

	s.logActivity(ctx, tenantID, actorID, t, activity.TypeTaskBlockToggled,
		fmt.Sprintf("task #%d blocking=%t", t.FriendlyID, isBlocking))
	s.notify(ctx, tenantID, t.ProjectID)

	return t, nil
}

// Reopen is the administrative override that returns a completed task to
// pending. Normal workflow treats completed as terminal.
func (s *Service) Reopen(ctx context.Context, tenantID, taskID, actorID string) (*Task, error) {
	t, err := s.Get(ctx, tenantID, taskID)
	if err != nil {
		return nil, err
	}
	if t.Status != StatusCompleted {
		return nil, ErrInvalidTransition
	}

	t.Status = StatusPending
	t.UpdatedAt = time.Now()
	if err := s.tasks.Update(ctx, tenantID, t); err != nil {
		return nil, fmt.Errorf("reopening task: %w", err)
	}

	s.logActivity(ctx, tenantID, actorID, t, activity.TypeTaskReopened,
		fmt.Sprintf("reopened task #%d", t.FriendlyID))
	s.notify(ctx, tenantID, t.ProjectID)

	return t, nil
}

// List returns the tasks for a scope. ScopeProject returns the project's
// tasks including completed ones; ScopeOpenGlobal returns every
// non-completed task in the tenant.
func (s *Service) List(ctx context.Context, tenantID string, scope Scope) ([]Task, error) {
	opts := ListOptions{}
	switch scope.Kind {
	case ScopeProject:
		projectID := scope.ProjectID
		opts.ProjectID = &projectID
	case ScopeOpenGlobal:
		opts.ExcludeCompleted = true
	default:
		return nil, ErrInvalidInput
	}

	tasks, err := s.tasks.List(ctx, tenantID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

// Subscribe returns a live subscription for the scope. The current snapshot
// is delivered immediately; every subsequent in-scope mutation delivers a
// fresh one. Callers own the matching Unsubscribe.
func (s *Service) Subscribe(ctx context.Context, tenantID string, scope Scope) (*Subscription, error) {
	sub := s.hub.add(tenantID, scope)

	tasks, err := s.List(ctx, tenantID, scope)
	if err != nil {
		sub.Unsubscribe()
		return nil, err
	}
	s.hub.deliver(sub.id, tasks)

	return sub, nil
}

// notify recomputes and delivers snapshots for every subscription watching
// the changed project.
func (s *Service) notify(ctx context.Context, tenantID, projectID string) {
	for _, sub := range s.hub.affected(tenantID, projectID) {
		tasks, err := s.List(ctx, tenantID, sub.scope)
		if err != nil {
			s.logger.Warn("subscription refresh failed", "tenant", tenantID, "error", err)
			continue
		}
		s.hub.deliver(sub.id, tasks)
	}
}

func (s *Service) logActivity(ctx context.Context, tenantID, actorID string, t *Task, kind activity.ActivityType, summary string) {
	if s.activities == nil {
		return
	}
	_ = s.activities.LogActivity(ctx, tenantID, &activity.ActivityEntry{
		ActorID:      actorID,
		ProjectID:    t.ProjectID,
		TaskID:       &t.ID,
		ActivityType: kind,
		Summary:      summary,
	})
}
