package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCommand is returned for a command the current phase does not accept.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrPrecondition is returned when a command is understood but not allowed
	// right now. The specific reason is one of the errors below.
	ErrPrecondition = errors.New("precondition not met")

	ErrHealthFull       = errors.New("health is already full")
	ErrNoSpareImplement = errors.New("no implement to sacrifice")
	ErrConditionActive  = errors.New("cannot focus while afflicted")

	// ErrPersistence wraps save and load failures.
	ErrPersistence = errors.New("persistence failed")

	// ErrUnknownPhase means the session carried a phase no handler exists for.
	// The session is forced into PhaseGameOver.
	ErrUnknownPhase = errors.New("unknown session phase")

	// ErrNoPersistence is returned by save and load when no store is configured.
	ErrNoPersistence = errors.New("no save storage configured")
)

// InputError reports a rejected command.
type InputError struct {
	Command Command
	Phase   Phase
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s while %s", ErrInvalidCommand, e.Command, e.Phase)
}

// Unwrap lets errors.Is match ErrInvalidCommand.
func (e *InputError) Unwrap() error { return ErrInvalidCommand }

// PreconditionError reports why an allowed command could not run.
type PreconditionError struct {
	Reason error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPrecondition, e.Reason)
}

// Unwrap lets errors.Is match both ErrPrecondition and the reason.
func (e *PreconditionError) Unwrap() []error {
	return []error{ErrPrecondition, e.Reason}
}
