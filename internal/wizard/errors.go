package wizard

import (
	"errors"
	"fmt"
)

var (
	// ErrGuard is returned when a forward transition's precondition is not met.
	ErrGuard = errors.New("wizard: step requirements not met")

	// ErrWrongStep is returned when an action does not belong to the current step.
	ErrWrongStep = errors.New("wizard: action not allowed in current step")

	// ErrSessionClosed is returned for any action on a closed session.
	ErrSessionClosed = errors.New("wizard: session closed")

	// ErrSessionNotFound is returned by stores for unknown or expired ids.
	ErrSessionNotFound = errors.New("wizard: session not found")

	// ErrPastDate is returned when the visitor picks a day before today.
	ErrPastDate = errors.New("wizard: date is in the past")

	// ErrSlotUnavailable is returned when the chosen start cannot hold the
	// draft's aggregate duration.
	ErrSlotUnavailable = errors.New("wizard: time slot unavailable")
)

func guardError(reason string) error {
	return fmt.Errorf("%w: %s", ErrGuard, reason)
}

func wrongStep(action string, step Step) error {
	return fmt.Errorf("%w: %s during %s", ErrWrongStep, action, step)
}
