package session

import (
	"errors"
	"fmt"

	"lexmap/models"
)

// ErrNoActiveSession is returned by operations that require an open session.
var ErrNoActiveSession = errors.New("no active session")

// ModeUnavailableError signals that the requested mode is not permitted for
// the entity's current status. It is reported synchronously; no state changes.
type ModeUnavailableError struct {
	EntityID string
	Mode     models.SessionMode
	Status   string
}

func (e *ModeUnavailableError) Error() string {
	return fmt.Sprintf("mode %s unavailable for entity %s (status %s)", e.Mode, e.EntityID, e.Status)
}

// ValidationError signals a rejected schedule submission. The session stays
// in its current state and no confirmation timer is started.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ConfirmationFailedError marks a schedule confirmation that reached the
// failed terminal state.
type ConfirmationFailedError struct {
	Reason string
}

func (e *ConfirmationFailedError) Error() string {
	return "confirmation failed: " + e.Reason
}

// WrongModeError signals an operation invoked on a session of another mode.
type WrongModeError struct {
	Want models.SessionMode
	Got  models.SessionMode
}

func (e *WrongModeError) Error() string {
	return fmt.Sprintf("operation requires a %s session, active session is %s", e.Want, e.Got)
}
