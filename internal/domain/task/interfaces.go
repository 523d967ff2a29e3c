package task

import (
	"context"

	"github.com/ganot/daybook/internal/domain/activity"
)

// Repository provides persistence for tasks.
//
// NextFriendlyID must be atomic with respect to concurrent creations in the
// same (tenant, project) scope: the sequence is gap-free and collision-free,
// which rules out a client-side read-then-write.
type Repository interface {
	Create(ctx context.Context, tenantID string, t *Task) error
	Get(ctx context.Context, tenantID, id string) (*Task, error)
	Update(ctx context.Context, tenantID string, t *Task) error
	List(ctx context.Context, tenantID string, opts ListOptions) ([]Task, error)
	NextFriendlyID(ctx context.Context, tenantID, projectID string) (int64, error)
}

// ActivityLogger records task mutations in the activity log.
// *activity.Service satisfies it.
type ActivityLogger interface {
	LogActivity(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error
}
