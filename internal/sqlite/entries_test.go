package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/ganot/daybook/internal/domain/journal"
	"github.com/stretchr/testify/require"
)

func TestEntryRepository_PutAndListByDate(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEntryRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	entry := &journal.Entry{
		ID:           journal.EntryID("7", "2024-03-01"),
		Date:         "2024-03-01",
		TenantID:     "7",
		GeneralNotes: "standup notes",
		Projects: []journal.ProjectEntry{
			{Name: "Acme", ProjectID: "p1", Status: journal.StatusActive, PMNotes: "kickoff"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	require.NoError(t, repo.Put(ctx, "7", entry))

	got, err := repo.ListByDate(ctx, "7", "2024-03-01")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "7_2024-03-01", got[0].ID)
	require.Equal(t, "standup notes", got[0].GeneralNotes)
	require.Len(t, got[0].Projects, 1)
	require.Equal(t, "p1", got[0].Projects[0].ProjectID)
	require.Equal(t, "Acme", got[0].Projects[0].Name)
}

func TestEntryRepository_PutUpdatesNewestRow(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEntryRepository(db)
	ctx := context.Background()

	// Two historical rows for the same day, simulating a past double write.
	old := time.Now().Add(-2 * time.Hour)
	newer := time.Now().Add(-time.Hour)
	seed := `INSERT INTO entries (entry_id, tenant_id, date, general_notes, projects, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := db.Exec(seed, "7_2024-03-01", "7", "2024-03-01", "old", "[]", old, old)
	require.NoError(t, err)
	_, err = db.Exec(seed, "7_2024-03-01", "7", "2024-03-01", "newer", "[]", old, newer)
	require.NoError(t, err)

	entry := &journal.Entry{
		ID:           "7_2024-03-01",
		Date:         "2024-03-01",
		TenantID:     "7",
		GeneralNotes: "rewritten",
		Projects:     []journal.ProjectEntry{},
		CreatedAt:    old,
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, repo.Put(ctx, "7", entry))

	got, err := repo.ListByDate(ctx, "7", "2024-03-01")
	require.NoError(t, err)
	require.Len(t, got, 2, "put must rewrite, not add a third row")

	// The stale row is untouched; the newest row carries the rewrite.
	notes := []string{got[0].GeneralNotes, got[1].GeneralNotes}
	require.Contains(t, notes, "old")
	require.Contains(t, notes, "rewritten")
	require.NotContains(t, notes, "newer")
}

func TestEntryRepository_ListByDateScopedToTenant(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEntryRepository(db)
	ctx := context.Background()

	now := time.Now()
	for _, tenant := range []string{"7", "9"} {
		entry := journal.NewEntry(tenant, "2024-03-01")
		entry.GeneralNotes = tenant
		entry.CreatedAt = now
		entry.UpdatedAt = now
		require.NoError(t, repo.Put(ctx, tenant, entry))
	}

	got, err := repo.ListByDate(ctx, "7", "2024-03-01")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "7", got[0].TenantID)
}

func TestEntryRepository_RoundTripThroughService(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	entries := NewEntryRepository(db)
	projects := NewProjectRepository(db)
	svc := journal.NewService(entries, projects, nil, testLogger())

	entry := journal.NewEntry("7", "2024-03-01")
	entry.Projects = []journal.ProjectEntry{
		{Name: "Acme", ProjectID: "p1", Status: journal.StatusActive, PMNotes: "notes"},
	}

	_, err := svc.Save(ctx, "7", entry)
	require.NoError(t, err)

	loaded, err := svc.Load(ctx, "7", "2024-03-01")
	require.NoError(t, err)
	require.Equal(t, "7_2024-03-01", loaded.ID)
	require.Len(t, loaded.Projects, 1)
	require.Equal(t, "p1", loaded.Projects[0].ProjectID)
}
