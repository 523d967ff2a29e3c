package task

import "strings"

// ValidateCreateInput validates fields required to create a task.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return ErrInvalidInput
	}
	return nil
}

// ValidateTransition validates a requested status transition. Same-status
// requests never reach here; the service treats them as idempotent no-ops.
//
// pending <-> in_progress <-> review -> completed; blocked is reachable from
// any non-completed status and returns only to pending; completed is
// terminal except for the administrative reopen, which bypasses this check.
func ValidateTransition(from, to Status) error {
	valid := false
	switch from {
	case StatusPending:
		valid = to == StatusInProgress || to == StatusBlocked
	case StatusInProgress:
		valid = to == StatusPending || to == StatusReview || to == StatusBlocked
	case StatusReview:
		valid = to == StatusInProgress || to == StatusCompleted || to == StatusBlocked
	case StatusBlocked:
		valid = to == StatusPending
	case StatusCompleted:
		valid = false
	}

	if !valid {
		return ErrInvalidTransition
	}
	return nil
}
