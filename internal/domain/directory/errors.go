package directory

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrPermissionDenied indicates the caller may not use the requested
	// tenant filter.
	ErrPermissionDenied = errors.New("permission denied for tenant filter")
)
