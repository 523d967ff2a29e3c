package directory

import (
	"strings"
	"time"
)

// TenantAll is the privileged list filter that spans every tenant.
const TenantAll = "ALL"

// Project is a canonical directory entry. Journal entries reference projects
// by id, or by name for records written before ids existed.
type Project struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeName produces the case- and whitespace-insensitive key used for
// legacy name matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Index provides the two lookups entry partitioning and visibility need.
type Index struct {
	byID   map[string]Project
	byName map[string]Project
}

// NewIndex builds an index over the given directory listing. When two
// projects normalize to the same name, the first one wins.
func NewIndex(projects []Project) *Index {
	idx := &Index{
		byID:   make(map[string]Project, len(projects)),
		byName: make(map[string]Project, len(projects)),
	}
	for _, p := range projects {
		idx.byID[p.ID] = p
		key := NormalizeName(p.Name)
		if _, ok := idx.byName[key]; !ok {
			idx.byName[key] = p
		}
	}
	return idx
}

// ByID looks up a project by its canonical id.
func (i *Index) ByID(id string) (Project, bool) {
	p, ok := i.byID[id]
	return p, ok
}

// ByName looks up a project by normalized display name.
func (i *Index) ByName(name string) (Project, bool) {
	p, ok := i.byName[NormalizeName(name)]
	return p, ok
}

// Resolve finds the directory project for a (projectID, name) reference,
// preferring the id and falling back to normalized name matching.
func (i *Index) Resolve(projectID, name string) (Project, bool) {
	if projectID != "" {
		if p, ok := i.byID[projectID]; ok {
			return p, true
		}
	}
	if name != "" {
		return i.ByName(name)
	}
	return Project{}, false
}
