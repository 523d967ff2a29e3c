package journal

import (
	"context"

	"github.com/ganot/daybook/internal/domain/activity"
	"github.com/ganot/daybook/internal/domain/directory"
)

// EntryRepository provides persistence for journal entries.
//
// ListByDate returns every raw record for the logical (tenant, date) pair.
// Historical duplicate writes left some days with more than one record; the
// service picks the most recently updated one as canonical.
type EntryRepository interface {
	ListByDate(ctx context.Context, tenantID, date string) ([]Entry, error)
	Put(ctx context.Context, tenantID string, entry *Entry) error
}

// DirectoryRepository supplies the global project directory used to resolve
// each project section to its owning tenant during save partitioning.
type DirectoryRepository interface {
	List(ctx context.Context, tenantID string) ([]directory.Project, error)
}

// ActivityLogger records entry saves in the activity log.
// *activity.Service satisfies it.
type ActivityLogger interface {
	LogActivity(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error
}
