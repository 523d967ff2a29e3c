package task

// ScopeKind selects what a subscription or listing covers.
type ScopeKind string

const (
	// ScopeProject covers one project's tasks, completed included.
	ScopeProject ScopeKind = "project"
	// ScopeOpenGlobal covers every non-completed task in the tenant,
	// regardless of project. Visibility narrowing to the current day's
	// entry is the caller's job; the task store knows nothing about
	// journal entries.
	ScopeOpenGlobal ScopeKind = "open-global"
)

// Scope identifies a task subscription target within a tenant.
type Scope struct {
	Kind      ScopeKind `json:"kind"`
	ProjectID string    `json:"project_id,omitempty"`
}

// ProjectScope builds a project-tab scope.
func ProjectScope(projectID string) Scope {
	return Scope{Kind: ScopeProject, ProjectID: projectID}
}

// OpenGlobalScope builds the tenant-wide open-tasks scope.
func OpenGlobalScope() Scope {
	return Scope{Kind: ScopeOpenGlobal}
}

// matches reports whether a change to the given project concerns the scope.
func (s Scope) matches(projectID string) bool {
	switch s.Kind {
	case ScopeProject:
		return s.ProjectID == projectID
	case ScopeOpenGlobal:
		return true
	default:
		return false
	}
}

// ListOptions provides filtering options for listing tasks.
type ListOptions struct {
	// ProjectID of nil means any project; a pointer to "" means general
	// tasks only.
	ProjectID        *string
	ExcludeCompleted bool
	Limit            int
	Offset           int
}
