package scheduler

import "errors"

// Request errors.  The scheduler state is left unchanged when one of them is
// returned; callers should test with errors.Is.
var (
	// ErrInvalidArgument is returned for a missing name or entry function,
	// a name longer than MaxName, or a priority outside [1,5].
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStackTooSmall is returned when the requested stack is below the
	// configured minimum.
	ErrStackTooSmall = errors.New("stack size below minimum")

	// ErrTableFull is returned when no process slot is free.
	ErrTableFull = errors.New("process table full")

	// ErrNoChildren is returned by Join when the caller has no children.
	ErrNoChildren = errors.New("no children")

	// ErrNotBlocked is returned by Unblock when the target does not exist or
	// is not blocked by Block.
	ErrNotBlocked = errors.New("process not blocked")
)
