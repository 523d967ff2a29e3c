package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ganot/daybook/internal/domain/journal"
)

// EntryRepository implements journal.EntryRepository for SQLite.
// Project sections are stored as a JSON document per entry row, matching
// the document-store shape the journal model was designed around.
type EntryRepository struct {
	db *DB
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// ListByDate returns every raw row for the logical (tenant, date) pair,
// duplicates included. Canonical selection is the service's job.
func (r *EntryRepository) ListByDate(ctx context.Context, tenantID, date string) ([]journal.Entry, error) {
	query := `
		SELECT entry_id, tenant_id, date, general_notes, projects, created_at, updated_at
		FROM entries
		WHERE tenant_id = ? AND date = ?
		ORDER BY updated_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []journal.Entry
	for rows.Next() {
		var entry journal.Entry
		var projectsJSON string
		err := rows.Scan(
			&entry.ID,
			&entry.TenantID,
			&entry.Date,
			&entry.GeneralNotes,
			&projectsJSON,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if err := json.Unmarshal([]byte(projectsJSON), &entry.Projects); err != nil {
			return nil, fmt.Errorf("failed to decode entry projects: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	return entries, nil
}

// Put upserts the canonical row for the entry's (tenant, date). When
// duplicate rows exist only the most recently updated one is rewritten; the
// others stay untouched as historical records.
func (r *EntryRepository) Put(ctx context.Context, tenantID string, entry *journal.Entry) error {
	projectsJSON, err := json.Marshal(entry.Projects)
	if err != nil {
		return fmt.Errorf("failed to encode entry projects: %w", err)
	}

	updateQuery := `
		UPDATE entries
		SET entry_id = ?, general_notes = ?, projects = ?, updated_at = ?
		WHERE seq = (
			SELECT seq FROM entries
			WHERE tenant_id = ? AND date = ?
			ORDER BY updated_at DESC, seq DESC
			LIMIT 1
		)
	`

	result, err := r.db.ExecContext(ctx, updateQuery,
		entry.ID,
		entry.GeneralNotes,
		string(projectsJSON),
		entry.UpdatedAt,
		tenantID,
		entry.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	insertQuery := `
		INSERT INTO entries (entry_id, tenant_id, date, general_notes, projects, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, insertQuery,
		entry.ID,
		tenantID,
		entry.Date,
		entry.GeneralNotes,
		string(projectsJSON),
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	return nil
}
