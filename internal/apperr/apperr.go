// Package apperr defines the typed domain failures raised by the rule
// engines. Handlers translate these into HTTP status codes exactly once at
// the transport boundary.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindForbidden
	KindInvalidOperation
	KindDeletionBlocked
	KindIllegalState
)

// Error is a typed domain failure.
type Error struct {
	Kind   Kind
	Entity string
	Reason string
	// Occupancy and Capacity are populated on capacity conflicts.
	Occupancy int
	Capacity  int
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return e.Entity + " not found"
	case KindConflict:
		if e.Capacity > 0 {
			return fmt.Sprintf("%s (%d/%d)", e.Reason, e.Occupancy, e.Capacity)
		}
		return e.Reason
	case KindForbidden:
		return e.Reason
	case KindInvalidOperation:
		return e.Reason
	case KindDeletionBlocked:
		return fmt.Sprintf("cannot delete %s: %s", e.Entity, e.Reason)
	case KindIllegalState:
		return "data inconsistency: " + e.Reason
	default:
		return e.Reason
	}
}

// NotFound reports that the named entity does not exist.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity}
}

// Conflict reports a uniqueness or state conflict with a human-readable reason.
func Conflict(reason string) *Error {
	return &Error{Kind: KindConflict, Reason: reason}
}

// CapacityFull reports an enrollment rejected because the group is full.
func CapacityFull(occupancy, capacity int) *Error {
	return &Error{
		Kind:      KindConflict,
		Reason:    "capacity full",
		Occupancy: occupancy,
		Capacity:  capacity,
	}
}

// Forbidden reports a denied authorization decision.
func Forbidden(reason string) *Error {
	return &Error{Kind: KindForbidden, Reason: reason}
}

// InvalidOperation reports a structurally valid request that violates a
// domain precondition.
func InvalidOperation(reason string) *Error {
	return &Error{Kind: KindInvalidOperation, Reason: reason}
}

// DeletionBlocked reports a delete rejected because dependents remain.
func DeletionBlocked(entity, reason string) *Error {
	return &Error{Kind: KindDeletionBlocked, Entity: entity, Reason: reason}
}

// IllegalState reports a missing required relationship. Unexpected, never
// retried; callers log it loudly.
func IllegalState(reason string) *Error {
	return &Error{Kind: KindIllegalState, Reason: reason}
}

// KindOf returns the failure kind, or 0 if err is not a domain failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// As unwraps err into *Error, returning nil when it is not a domain failure.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsNotFound reports whether err is a NotFound domain failure.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsConflict reports whether err is a Conflict domain failure.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsForbidden reports whether err is a Forbidden domain failure.
func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }
