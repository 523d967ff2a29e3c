package activity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Service is the single write path into the activity log. The journal and
// task services record their mutations through LogActivity instead of
// talking to the repository directly, so validation and timestamping happen
// in one place.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// LogActivity validates and appends one entry. CreatedAt is stamped when the
// caller leaves it zero.
func (s *Service) LogActivity(ctx context.Context, tenantID string, entry *ActivityEntry) error {
	if entry == nil || strings.TrimSpace(tenantID) == "" {
		return ErrInvalidInput
	}
	if entry.ActivityType == "" {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Log(ctx, tenantID, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	s.logger.Debug("activity recorded", "tenant", tenantID, "type", entry.ActivityType)
	return nil
}

// GetRecentActivity lists entries newest first. A Limit of zero or less
// falls back to the store default.
func (s *Service) GetRecentActivity(ctx context.Context, tenantID string, opts ListActivityOptions) ([]ActivityEntry, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, ErrInvalidInput
	}
	entries, err := s.repo.List(ctx, tenantID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	return entries, nil
}
