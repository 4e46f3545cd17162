package appstate

import "errors"

var (
	// ErrInvalidStateTransition is returned when a transition skips a lifecycle step.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrAlreadyTerminated is returned for any transition out of StateTerminated.
	ErrAlreadyTerminated = errors.New("application already terminated")
)
