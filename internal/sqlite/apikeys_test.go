package sqlite

import (
	"context"
	"testing"

	"github.com/ganot/daybook/internal/domain/identity"
	"github.com/ganot/daybook/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRepository_CreateAndResolve(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAPIKeyRepository(db)
	ctx := context.Background()

	user := identity.User{
		ID:                 "u1",
		TenantID:           "tenant1",
		Role:               identity.RoleProjectManager,
		AssignedProjectIDs: []string{"p1", "p2"},
	}
	require.NoError(t, repo.Create(ctx, "hash-abc", user, "ci key"))

	got, err := repo.Resolve(ctx, "hash-abc")
	require.NoError(t, err)
	require.Equal(t, "tenant1", got.TenantID)
	require.Equal(t, identity.RoleProjectManager, got.Role)
	require.Equal(t, []string{"p1", "p2"}, got.AssignedProjectIDs)

	_, err = repo.Resolve(ctx, "hash-missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAPIKeyRepository_ResolveRecordsUse(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAPIKeyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "hash-xyz", identity.User{ID: "u1", TenantID: "tenant1", Role: identity.RoleUser}, ""))

	_, err := repo.Resolve(ctx, "hash-xyz")
	require.NoError(t, err)

	var lastUsed any
	err = db.QueryRow(`SELECT last_used FROM api_keys WHERE key_hash = ?`, "hash-xyz").Scan(&lastUsed)
	require.NoError(t, err)
	require.NotNil(t, lastUsed)
}
