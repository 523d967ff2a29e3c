package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/daybook/internal/domain/directory"
	"github.com/ganot/daybook/internal/repository"
)

// ProjectRepository implements directory.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create adds a project to the directory
func (r *ProjectRepository) Create(ctx context.Context, tenantID string, proj *directory.Project) error {
	query := `
		INSERT INTO projects (id, tenant_id, name, color, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		tenantID,
		proj.Name,
		proj.Color,
		proj.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, tenantID, id string) (*directory.Project, error) {
	query := `
		SELECT id, tenant_id, name, color, created_at
		FROM projects
		WHERE id = ? AND tenant_id = ?
	`

	var proj directory.Project
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&proj.ID,
		&proj.TenantID,
		&proj.Name,
		&proj.Color,
		&proj.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &proj, nil
}

// List returns the directory for a tenant; directory.TenantAll spans every
// tenant (privilege is checked at the service layer).
func (r *ProjectRepository) List(ctx context.Context, tenantID string) ([]directory.Project, error) {
	query := `
		SELECT id, tenant_id, name, color, created_at
		FROM projects
	`
	var args []any
	if tenantID != directory.TenantAll {
		query += ` WHERE tenant_id = ?`
		args = append(args, tenantID)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []directory.Project
	for rows.Next() {
		var proj directory.Project
		err := rows.Scan(
			&proj.ID,
			&proj.TenantID,
			&proj.Name,
			&proj.Color,
			&proj.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, proj)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}
