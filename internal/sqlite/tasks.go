package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ganot/daybook/internal/domain/task"
	"github.com/ganot/daybook/internal/repository"
)

// TaskRepository implements task.Repository for SQLite
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `
	id, tenant_id, project_id, friendly_id, title, description,
	status, is_blocking, created_by, assigned_to, entry_id, end_date,
	created_at, updated_at
`

// Create inserts a new task
func (r *TaskRepository) Create(ctx context.Context, tenantID string, t *task.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		tenantID,
		t.ProjectID,
		t.FriendlyID,
		t.Title,
		t.Description,
		t.Status,
		t.IsBlocking,
		t.CreatedBy,
		t.AssignedTo,
		t.EntryID,
		t.EndDate,
		t.CreatedAt,
		t.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// Get retrieves a task by ID
func (r *TaskRepository) Get(ctx context.Context, tenantID, id string) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND tenant_id = ?`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

// Update rewrites the mutable task fields
func (r *TaskRepository) Update(ctx context.Context, tenantID string, t *task.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, is_blocking = ?,
		    assigned_to = ?, end_date = ?, updated_at = ?
		WHERE id = ? AND tenant_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		t.Status,
		t.IsBlocking,
		t.AssignedTo,
		t.EndDate,
		t.UpdatedAt,
		t.ID,
		tenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// List returns tasks matching the options, newest first
func (r *TaskRepository) List(ctx context.Context, tenantID string, opts task.ListOptions) ([]task.Task, error) {
	var conditions []string
	var args []any

	conditions = append(conditions, "tenant_id = ?")
	args = append(args, tenantID)

	if opts.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *opts.ProjectID)
	}
	if opts.ExcludeCompleted {
		conditions = append(conditions, "status != ?")
		args = append(args, task.StatusCompleted)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` +
		strings.Join(conditions, " AND ") +
		` ORDER BY created_at DESC, friendly_id DESC`

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// NextFriendlyID atomically advances the counter for the (tenant, project)
// scope and returns the new value. The read-modify-write runs inside one
// transaction so concurrent creations can neither skip nor repeat a number.
func (r *TaskRepository) NextFriendlyID(ctx context.Context, tenantID, projectID string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	upsertQuery := `
		INSERT INTO task_counters (tenant_id, project_id, next_id)
		VALUES (?, ?, 1)
		ON CONFLICT(tenant_id, project_id) DO UPDATE SET next_id = next_id + 1
	`

	if _, err := tx.ExecContext(ctx, upsertQuery, tenantID, projectID); err != nil {
		return 0, fmt.Errorf("failed to advance friendly id counter: %w", err)
	}

	selectQuery := `
		SELECT next_id FROM task_counters
		WHERE tenant_id = ? AND project_id = ?
	`

	var next int64
	if err := tx.QueryRowContext(ctx, selectQuery, tenantID, projectID).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to read friendly id counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return next, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*task.Task, error) {
	var t task.Task
	var endDate sql.NullTime
	err := row.Scan(
		&t.ID,
		&t.TenantID,
		&t.ProjectID,
		&t.FriendlyID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.IsBlocking,
		&t.CreatedBy,
		&t.AssignedTo,
		&t.EntryID,
		&endDate,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if endDate.Valid {
		t.EndDate = &endDate.Time
	}
	return &t, nil
}
