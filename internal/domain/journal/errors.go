package journal

import "errors"

var (
	// ErrInvalidInput indicates invalid entry input.
	ErrInvalidInput = errors.New("invalid entry input")
	// ErrStaleLoad indicates a load superseded by a later date navigation;
	// the caller must discard the result.
	ErrStaleLoad = errors.New("load superseded by a newer request")
	// ErrMergedEntry indicates an attempt to persist the synthetic
	// cross-tenant entry directly.
	ErrMergedEntry = errors.New("merged entry cannot be persisted directly")
	// ErrNotSuperadmin indicates the merged view was requested without the
	// required privilege.
	ErrNotSuperadmin = errors.New("merged view requires superadmin")
)
