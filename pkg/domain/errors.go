package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownKind is returned when a machine kind string is not recognized.
var ErrUnknownKind = errors.New("unknown machine kind")

// ErrUnknownState is returned when a snapshot references a state outside the definition.
var ErrUnknownState = errors.New("unknown state")

// ErrKindMismatch is returned when a snapshot is restored into a machine of another kind.
var ErrKindMismatch = errors.New("snapshot kind does not match machine kind")
