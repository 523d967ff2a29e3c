package directory_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/ganot/daybook/internal/domain/directory"
	"github.com/ganot/daybook/internal/domain/identity"
	"github.com/ganot/daybook/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreate_GeneratesID(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, "tenant1", mock.Anything).Return(nil)

	svc := directory.NewService(repo, testLogger())
	proj, err := svc.Create(ctx, "tenant1", directory.CreateRequest{Name: "Acme"})
	require.NoError(t, err)
	require.NotEmpty(t, proj.ID)
	require.Equal(t, "tenant1", proj.TenantID)
}

func TestCreate_Validation(t *testing.T) {
	svc := directory.NewService(&mocks.ProjectRepository{}, testLogger())
	_, err := svc.Create(context.Background(), "tenant1", directory.CreateRequest{Name: "  "})
	require.ErrorIs(t, err, directory.ErrInvalidInput)
}

func TestList_DefaultsToOwnTenant(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("List", ctx, "tenant1").Return([]directory.Project{{ID: "p1"}}, nil)

	svc := directory.NewService(repo, testLogger())
	got, err := svc.List(ctx, identity.User{TenantID: "tenant1", Role: identity.RoleUser}, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestList_AllRequiresSuperadmin(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("List", ctx, directory.TenantAll).Return([]directory.Project{}, nil)

	svc := directory.NewService(repo, testLogger())

	_, err := svc.List(ctx, identity.User{TenantID: "tenant1", Role: identity.RoleTenantAdmin}, directory.TenantAll)
	require.ErrorIs(t, err, directory.ErrPermissionDenied)

	_, err = svc.List(ctx, identity.User{TenantID: "tenant1", Role: identity.RoleSuperadmin}, directory.TenantAll)
	require.NoError(t, err)
}

func TestList_CrossTenantRequiresSuperadmin(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("List", ctx, "tenant2").Return([]directory.Project{}, nil)

	svc := directory.NewService(repo, testLogger())

	_, err := svc.List(ctx, identity.User{TenantID: "tenant1", Role: identity.RoleProjectManager}, "tenant2")
	require.ErrorIs(t, err, directory.ErrPermissionDenied)

	_, err = svc.List(ctx, identity.User{TenantID: "tenant1", Role: identity.RoleSuperadmin}, "tenant2")
	require.NoError(t, err)
}

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "acme corp", directory.NormalizeName("  ACME   Corp "))
}

func TestIndexResolve(t *testing.T) {
	idx := directory.NewIndex([]directory.Project{
		{ID: "p1", Name: "Acme"},
		{ID: "p2", Name: "Globex"},
	})

	p, ok := idx.Resolve("p1", "wrong name")
	require.True(t, ok, "id match wins over name")
	require.Equal(t, "p1", p.ID)

	p, ok = idx.Resolve("", "globex")
	require.True(t, ok)
	require.Equal(t, "p2", p.ID)

	_, ok = idx.Resolve("missing", "nobody")
	require.False(t, ok)

	_, ok = idx.Resolve("", "")
	require.False(t, ok)
}
