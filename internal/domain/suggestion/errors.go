package suggestion

import "errors"

var (
	// ErrInvalidInput indicates an empty suggestion line.
	ErrInvalidInput = errors.New("invalid suggestion input")
	// ErrAlreadyAccepted indicates the line was accepted earlier in this
	// session; accepting it again would duplicate the task.
	ErrAlreadyAccepted = errors.New("suggestion already accepted")
)
