package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an optimistic concurrency check fails
	ErrConflict = errors.New("conflict: entity was modified concurrently")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrPermissionDenied is returned when the acting role or tenant scope
	// does not allow the operation
	ErrPermissionDenied = errors.New("permission denied")

	// ErrTransient is returned for availability failures that the caller
	// may choose to retry; the core never retries on its own
	ErrTransient = errors.New("store temporarily unavailable")
)

// PartialSaveError reports a multi-tenant entry save where some per-tenant
// slices were written and others failed. It is distinct from a total failure
// because the persisted state is now inconsistent across tenants and needs a
// compensating re-save or manual reconciliation.
type PartialSaveError struct {
	Date      string
	Succeeded []string
	Failed    map[string]error
}

func (e *PartialSaveError) Error() string {
	return fmt.Sprintf("partial save for %s: wrote tenants [%s], failed tenants [%s]",
		e.Date, strings.Join(e.Succeeded, ", "), strings.Join(e.FailedTenants(), ", "))
}

// FailedTenants returns the tenant ids whose slice write failed, sorted.
func (e *PartialSaveError) FailedTenants() []string {
	out := make([]string, 0, len(e.Failed))
	for tenant := range e.Failed {
		out = append(out, tenant)
	}
	sort.Strings(out)
	return out
}
