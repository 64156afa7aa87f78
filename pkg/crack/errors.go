package crack

import "errors"

var (
	// ErrSource wraps a failure of the candidate source during a run.
	ErrSource = errors.New("crack: candidate source failed")

	// ErrNilTarget is returned by Run when no target is given.
	ErrNilTarget = errors.New("crack: nil target")
)
