package repository

import (
	"context"

	"github.com/ganot/daybook/internal/domain/identity"
)

// Per-aggregate repository contracts live with their domain packages
// (journal.EntryRepository, task.Repository, directory.Repository,
// activity.Repository); this package carries only the shared sentinels and
// the contracts with no owning domain.

// APIKeyRepository resolves and manages API keys
type APIKeyRepository interface {
	Resolve(ctx context.Context, keyHash string) (identity.User, error)
	Create(ctx context.Context, keyHash string, user identity.User, description string) error
}
