package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownWidgetType is returned by registries for types they do not know.
var ErrUnknownWidgetType = errors.New("unknown widget type")

// ErrSnapshotNotFound is returned when a tree snapshot ID cannot be found in the store.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ValidationError reports a malformed seed entry.
type ValidationError struct {
	Entity string     // Name or ID of the offending entry
	Kind   EntityKind // Kind of entity being built
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %q: %s: %v", e.Kind, e.Entity, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Entity, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// SerializationError reports a bound composite property that cannot be stored as text.
type SerializationError struct {
	Widget   string
	Property string
	Err      error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("widget %q: cannot serialize property %q: %v", e.Widget, e.Property, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// CollisionWarning reports that an insertion shadowed an existing tree entry.
// It is only returned as an error in strict mode.
type CollisionWarning struct {
	Name     string
	Existing EntityKind
	Incoming EntityKind
}

func (e *CollisionWarning) Error() string {
	return fmt.Sprintf("name collision on %q: %s overwrites %s", e.Name, e.Incoming, e.Existing)
}
