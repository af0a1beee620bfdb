package room

import "errors"

// Store errors.
var (
	ErrRoomNotFound = errors.New("incident room not found")
)

// Policy and lifecycle errors. These are caller errors, never retried.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrRoomClosed          = errors.New("incident room is closed")
	ErrInvalidTransition   = errors.New("illegal stage transition")
	ErrUnauthorized        = errors.New("actor lacks required capability")
	ErrParticipantNotFound = errors.New("actor is not a participant of this room")
	ErrDuplicateEvidence   = errors.New("evidence item with this id already exists")
	ErrNoCloser            = errors.New("room has no participant with close authority")
)

// Disclosure workflow errors.
var (
	ErrJustificationTooShort = errors.New("justification must be at least 50 characters")
	ErrDisclosurePending     = errors.New("a disclosure request is already pending")
	ErrAlreadyRevealed       = errors.New("identity has already been revealed")
	ErrNoDisclosureRequest   = errors.New("no pending disclosure request")
)
