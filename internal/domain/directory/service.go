package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ganot/daybook/internal/domain/identity"
	"github.com/ganot/daybook/internal/repository"
	"github.com/google/uuid"
)

// Service handles project directory operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new directory service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	ID    string
	Name  string
	Color string
}

// Create adds a project to the directory.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	proj := &Project{
		ID:        id,
		TenantID:  tenantID,
		Name:      req.Name,
		Color:     req.Color,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, tenantID, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns the directory visible to the actor. The TenantAll filter is
// restricted to superadmin; everyone else is pinned to their own tenant.
func (s *Service) List(ctx context.Context, actor identity.User, tenantFilter string) ([]Project, error) {
	if tenantFilter == "" {
		tenantFilter = actor.TenantID
	}
	if tenantFilter == TenantAll && !actor.Role.AtLeast(identity.RoleSuperadmin) {
		return nil, ErrPermissionDenied
	}
	if tenantFilter != TenantAll && tenantFilter != actor.TenantID && !actor.Role.AtLeast(identity.RoleSuperadmin) {
		return nil, ErrPermissionDenied
	}

	projects, err := s.repo.List(ctx, tenantFilter)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}
