package identity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleOrdering(t *testing.T) {
	require.True(t, RoleSuperadmin.AtLeast(RoleTenantAdmin))
	require.True(t, RoleProjectManager.AtLeast(RoleProjectManager))
	require.False(t, RoleUser.AtLeast(RoleProjectManager))
}

func TestParseRoleRoundTrip(t *testing.T) {
	for _, r := range []Role{RoleUser, RoleProjectManager, RoleTenantAdmin, RoleSuperadmin} {
		parsed, err := ParseRole(r.String())
		require.NoError(t, err)
		require.Equal(t, r, parsed)
	}

	_, err := ParseRole("root")
	require.Error(t, err)
}

func TestAssigned(t *testing.T) {
	u := User{AssignedProjectIDs: []string{"p1", "p2"}}
	require.True(t, u.Assigned("p2"))
	require.False(t, u.Assigned("p3"))
	require.False(t, User{}.Assigned("p1"))
}
