package journal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ganot/daybook/internal/domain/activity"
	"github.com/ganot/daybook/internal/domain/directory"
	"github.com/ganot/daybook/internal/domain/identity"
	"github.com/ganot/daybook/internal/repository"
)

// Service owns journal entry reads and writes: identity derivation,
// duplicate-tolerant loads, the date-navigation race guard, cross-tenant
// save partitioning, and the superadmin merged view.
type Service struct {
	entries    EntryRepository
	dir        DirectoryRepository
	activities ActivityLogger
	logger     *slog.Logger

	// loadSeq is the monotonically increasing request token behind the
	// stale-load guard. A load's result is only valid while its token is
	// still the most recently issued one.
	loadSeq atomic.Int64
}

// NewService creates a new journal service.
func NewService(entries EntryRepository, dir DirectoryRepository, activities ActivityLogger, logger *slog.Logger) *Service {
	return &Service{
		entries:    entries,
		dir:        dir,
		activities: activities,
		logger:     logger,
	}
}

// Load returns the canonical entry for (tenant, date). Duplicate raw records
// for the same day are tolerated: the most recently updated one wins. When
// no record exists a fresh empty entry is returned. If another Load is
// issued before this one resolves, the result is discarded with ErrStaleLoad.
func (s *Service) Load(ctx context.Context, tenantID, date string) (*Entry, error) {
	if strings.TrimSpace(tenantID) == "" || strings.TrimSpace(date) == "" {
		return nil, ErrInvalidInput
	}

	token := s.loadSeq.Add(1)

	raws, err := s.entries.ListByDate(ctx, tenantID, date)
	if err != nil {
		return nil, fmt.Errorf("loading entry %s: %w", EntryID(tenantID, date), err)
	}

	if s.loadSeq.Load() != token {
		s.logger.Debug("discarding stale load", "tenant", tenantID, "date", date, "token", token)
		return nil, ErrStaleLoad
	}

	return canonical(tenantID, date, raws), nil
}

// canonical picks the winning raw record and applies the on-load migration.
func canonical(tenantID, date string, raws []Entry) *Entry {
	if len(raws) == 0 {
		return NewEntry(tenantID, date)
	}
	best := raws[0]
	for _, raw := range raws[1:] {
		if raw.UpdatedAt.After(best.UpdatedAt) {
			best = raw
		}
	}
	best.ID = EntryID(tenantID, date)
	best.migrate()
	return &best
}

// SaveResult reports the per-tenant slices a save produced.
type SaveResult struct {
	Slices []*Entry `json:"slices"`
}

// Save partitions the entry's projects by owning tenant and writes one
// per-tenant slice each. A day's entry may reference projects that belong to
// other tenants; persisted storage is tenant-scoped, so each owner gets its
// own record. General notes stay on the acting tenant's slice only.
//
// Slice writes are independent units of work. When some succeed and some
// fail the result is a *repository.PartialSaveError, never a silent
// partial success.
func (s *Service) Save(ctx context.Context, actorTenant string, entry *Entry) (*SaveResult, error) {
	if entry == nil || strings.TrimSpace(entry.Date) == "" {
		return nil, ErrInvalidInput
	}
	if actorTenant == TenantMulti || strings.TrimSpace(actorTenant) == "" {
		return nil, ErrMergedEntry
	}

	projects, err := s.dir.List(ctx, directory.TenantAll)
	if err != nil {
		return nil, fmt.Errorf("resolving project owners: %w", err)
	}
	idx := directory.NewIndex(projects)

	slices := s.partition(actorTenant, entry, idx)

	result := &SaveResult{}
	var succeeded []string
	failed := map[string]error{}
	for _, slice := range slices {
		if err := s.entries.Put(ctx, slice.TenantID, slice); err != nil {
			s.logger.Error("slice write failed", "tenant", slice.TenantID, "date", slice.Date, "error", err)
			failed[slice.TenantID] = err
			continue
		}
		succeeded = append(succeeded, slice.TenantID)
		result.Slices = append(result.Slices, slice)
	}

	switch {
	case len(failed) == 0:
		s.logEntrySaved(ctx, actorTenant, entry.Date, activity.TypeEntrySaved, succeeded)
		return result, nil
	case len(succeeded) == 0:
		var firstErr error
		for _, err := range failed {
			firstErr = err
			break
		}
		return nil, fmt.Errorf("saving entry %s: %w", EntryID(actorTenant, entry.Date), firstErr)
	default:
		s.logEntrySaved(ctx, actorTenant, entry.Date, activity.TypeEntryPartialSave, succeeded)
		return result, &repository.PartialSaveError{
			Date:      entry.Date,
			Succeeded: succeeded,
			Failed:    failed,
		}
	}
}

// partition groups the entry's projects by resolved owning tenant,
// preserving first-seen tenant order so writes are deterministic.
func (s *Service) partition(actorTenant string, entry *Entry, idx *directory.Index) []*Entry {
	now := time.Now()
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	slices := map[string]*Entry{}
	var order []string

	sliceFor := func(tenantID string) *Entry {
		if slice, ok := slices[tenantID]; ok {
			return slice
		}
		slice := &Entry{
			ID:        EntryID(tenantID, entry.Date),
			Date:      entry.Date,
			TenantID:  tenantID,
			Projects:  []ProjectEntry{},
			CreatedAt: createdAt,
			UpdatedAt: now,
		}
		slices[tenantID] = slice
		order = append(order, tenantID)
		return slice
	}

	// The actor's slice always exists: it carries the general notes even
	// when every project belongs to someone else.
	actorSlice := sliceFor(actorTenant)
	actorSlice.GeneralNotes = entry.GeneralNotes

	for _, pe := range entry.Projects {
		owner := actorTenant
		if proj, ok := idx.Resolve(pe.ProjectID, pe.Name); ok {
			owner = proj.TenantID
		}
		slice := sliceFor(owner)
		slice.Projects = append(slice.Projects, pe)
	}

	out := make([]*Entry, 0, len(order))
	for _, tenantID := range order {
		out = append(out, slices[tenantID])
	}
	return out
}

// LoadMerged builds the read-only cross-tenant view for a date: every
// candidate tenant's entry flattened into one synthetic record tagged
// TenantMulti. Only superadmin may call it, and only while not masquerading
// as a specific tenant.
func (s *Service) LoadMerged(ctx context.Context, role identity.Role, date string, candidateTenants []string) (*Entry, error) {
	if !role.AtLeast(identity.RoleSuperadmin) {
		return nil, ErrNotSuperadmin
	}
	if strings.TrimSpace(date) == "" {
		return nil, ErrInvalidInput
	}

	token := s.loadSeq.Add(1)

	merged := &Entry{
		ID:       MergedEntryID(date),
		Date:     date,
		TenantID: TenantMulti,
		Projects: []ProjectEntry{},
	}

	found := false
	for _, tenantID := range candidateTenants {
		raws, err := s.entries.ListByDate(ctx, tenantID, date)
		if err != nil {
			return nil, fmt.Errorf("merged load for tenant %s: %w", tenantID, err)
		}
		if len(raws) == 0 {
			continue
		}
		entry := canonical(tenantID, date, raws)
		if !found {
			merged.CreatedAt = entry.CreatedAt
			found = true
		}
		merged.Projects = append(merged.Projects, entry.Projects...)
	}

	if s.loadSeq.Load() != token {
		return nil, ErrStaleLoad
	}

	if !found {
		now := time.Now()
		merged.CreatedAt = now
		merged.UpdatedAt = now
		return merged, nil
	}

	merged.UpdatedAt = time.Now()
	return merged, nil
}

func (s *Service) logEntrySaved(ctx context.Context, tenantID, date string, kind activity.ActivityType, tenants []string) {
	if s.activities == nil {
		return
	}
	entryID := EntryID(tenantID, date)
	_ = s.activities.LogActivity(ctx, tenantID, &activity.ActivityEntry{
		EntryID:      &entryID,
		ActivityType: kind,
		Summary:      fmt.Sprintf("saved %s across tenants %v", date, tenants),
	})
}
