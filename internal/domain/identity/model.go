package identity

// User is the resolved identity of the current session, supplied by the
// authentication boundary and consumed read-only by every other component.
type User struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	Role     Role   `json:"role"`
	// AssignedProjectIDs limits what a RoleUser may see. Ignored at
	// RoleProjectManager and above.
	AssignedProjectIDs []string `json:"assigned_project_ids,omitempty"`
}

// Assigned reports whether the user is assigned to the given global project.
func (u User) Assigned(projectID string) bool {
	for _, id := range u.AssignedProjectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}
