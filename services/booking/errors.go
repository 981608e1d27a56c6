package booking

import "errors"

// Business-rule conflicts surfaced by the engine. The dialogue maps each one
// to a remediation step instead of discarding the session.
var (
	// ErrInvalidInterval means the dates do not describe at least one night.
	ErrInvalidInterval = errors.New("check-out date must be after check-in date")

	// ErrRoomUnavailable means the held room lost the commit-time race.
	ErrRoomUnavailable = errors.New("room no longer available for the selected dates")

	// ErrCapacityExceeded means the guest count no longer fits the room.
	ErrCapacityExceeded = errors.New("guest count exceeds room capacity")

	// ErrIncompleteDraft means a required field is missing at commit time.
	ErrIncompleteDraft = errors.New("reservation details incomplete")
)
