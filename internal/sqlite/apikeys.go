package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ganot/daybook/internal/domain/identity"
	"github.com/ganot/daybook/internal/repository"
)

// APIKeyRepository implements repository.APIKeyRepository for SQLite
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Resolve returns the identity behind a key hash and records the use.
func (r *APIKeyRepository) Resolve(ctx context.Context, keyHash string) (identity.User, error) {
	query := `
		SELECT tenant_id, user_id, role, assigned_project_ids
		FROM api_keys
		WHERE key_hash = ?
	`

	var user identity.User
	var roleName, assignedJSON string
	err := r.db.QueryRowContext(ctx, query, keyHash).Scan(
		&user.TenantID,
		&user.ID,
		&roleName,
		&assignedJSON,
	)
	if err == sql.ErrNoRows {
		return identity.User{}, repository.ErrNotFound
	}
	if err != nil {
		return identity.User{}, fmt.Errorf("failed to resolve api key: %w", err)
	}

	role, err := identity.ParseRole(roleName)
	if err != nil {
		return identity.User{}, fmt.Errorf("failed to resolve api key: %w", err)
	}
	user.Role = role

	if err := json.Unmarshal([]byte(assignedJSON), &user.AssignedProjectIDs); err != nil {
		return identity.User{}, fmt.Errorf("failed to decode assigned projects: %w", err)
	}

	_, _ = r.db.ExecContext(ctx, `UPDATE api_keys SET last_used = ? WHERE key_hash = ?`, time.Now(), keyHash)

	return user, nil
}

// Create stores a new API key.
func (r *APIKeyRepository) Create(ctx context.Context, keyHash string, user identity.User, description string) error {
	assignedJSON, err := json.Marshal(user.AssignedProjectIDs)
	if err != nil {
		return fmt.Errorf("failed to encode assigned projects: %w", err)
	}
	if user.AssignedProjectIDs == nil {
		assignedJSON = []byte("[]")
	}

	query := `
		INSERT INTO api_keys (key_hash, tenant_id, user_id, role, assigned_project_ids, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		keyHash,
		user.TenantID,
		user.ID,
		user.Role.String(),
		string(assignedJSON),
		description,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to create api key: %w", err)
	}

	return nil
}
