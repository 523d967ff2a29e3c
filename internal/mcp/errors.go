package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/daybook/internal/domain/directory"
	"github.com/ganot/daybook/internal/domain/journal"
	"github.com/ganot/daybook/internal/domain/suggestion"
	"github.com/ganot/daybook/internal/domain/task"
	"github.com/ganot/daybook/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var partial *repository.PartialSaveError
	if errors.As(err, &partial) {
		return &APIError{
			Code:    "PARTIAL_SAVE",
			Message: "some tenant slices failed to save",
			Details: map[string]any{
				"saved_tenants":  partial.Succeeded,
				"failed_tenants": partial.FailedTenants(),
			},
			RecoveryHint: "Re-save the entry to repair the failed tenants",
		}
	}

	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return &APIError{Code: "TASK_NOT_FOUND", Message: "task not found", RecoveryHint: "Check ID spelling"}
	case errors.Is(err, task.ErrInvalidTransition):
		return &APIError{Code: "INVALID_TRANSITION", Message: "invalid status transition", RecoveryHint: "Check valid transitions"}
	case errors.Is(err, directory.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check ID spelling"}
	case errors.Is(err, journal.ErrStaleLoad):
		return &APIError{Code: "STALE_LOAD", Message: "load superseded by a newer request", RecoveryHint: "Discard this result"}
	case errors.Is(err, journal.ErrMergedEntry):
		return &APIError{Code: "MERGED_ENTRY", Message: "merged entries cannot be saved directly"}
	case errors.Is(err, journal.ErrNotSuperadmin),
		errors.Is(err, directory.ErrPermissionDenied),
		errors.Is(err, repository.ErrPermissionDenied):
		return &APIError{Code: "PERMISSION_DENIED", Message: "insufficient privilege"}
	case errors.Is(err, suggestion.ErrAlreadyAccepted):
		return &APIError{Code: "ALREADY_ACCEPTED", Message: "suggestion already accepted"}
	case errors.Is(err, repository.ErrTransient):
		return &APIError{Code: "STORE_UNAVAILABLE", Message: "store temporarily unavailable", RecoveryHint: "Retry the request"}
	case errors.Is(err, journal.ErrInvalidInput),
		errors.Is(err, task.ErrInvalidInput),
		errors.Is(err, directory.ErrInvalidInput),
		errors.Is(err, suggestion.ErrInvalidInput),
		errors.Is(err, repository.ErrInvalidInput):
		return &APIError{Code: "VALIDATION", Message: err.Error()}
	default:
		return nil
	}
}

// wrapErr converts a domain error into the tool response error, preserving
// unmapped errors as-is.
func wrapErr(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
