package identity

import "fmt"

// Role is an ordered privilege level. All permission checks compare levels;
// role names never appear in checks.
type Role int

const (
	// RoleUser sees only projects assigned to them.
	RoleUser Role = iota
	// RoleProjectManager sees every project in the tenant.
	RoleProjectManager
	// RoleTenantAdmin manages the tenant (keys, directory).
	RoleTenantAdmin
	// RoleSuperadmin may view the cross-tenant merged journal.
	RoleSuperadmin
)

// AtLeast reports whether r carries at least the privilege of min.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleProjectManager:
		return "pm"
	case RoleTenantAdmin:
		return "admin"
	case RoleSuperadmin:
		return "superadmin"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole maps a stored role name to its level.
func ParseRole(s string) (Role, error) {
	switch s {
	case "user":
		return RoleUser, nil
	case "pm":
		return RoleProjectManager, nil
	case "admin":
		return RoleTenantAdmin, nil
	case "superadmin":
		return RoleSuperadmin, nil
	default:
		return RoleUser, fmt.Errorf("unknown role %q", s)
	}
}
