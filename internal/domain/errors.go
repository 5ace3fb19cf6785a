package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// SeatTakenError signals that a seat is not reservable for a trip: either a
// reservation already exists for the pair or the seat's effective status is
// blocked/reserved. Callers should re-fetch the seat map rather than retry.
type SeatTakenError struct {
	TripID int64
	SeatID int64
	Err    error
}

func (e SeatTakenError) Error() string {
	return fmt.Sprintf("seat %d is not reservable for trip %d", e.SeatID, e.TripID)
}

func (e SeatTakenError) Unwrap() error { return e.Err }

// BusTypeMismatchError signals that a seat belongs to a different bus type
// than the trip it was requested for.
type BusTypeMismatchError struct {
	SeatID    int64
	BusTypeID int64
}

func (e BusTypeMismatchError) Error() string {
	return fmt.Sprintf("seat %d does not belong to bus type %d", e.SeatID, e.BusTypeID)
}

// DestructiveConflictError refuses an operation that would orphan existing
// records, e.g. regenerating a seat layout that reservations still reference.
type DestructiveConflictError struct {
	Resource string
	Refs     int64
}

func (e DestructiveConflictError) Error() string {
	return fmt.Sprintf("%s is referenced by %d existing record(s)", e.Resource, e.Refs)
}

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// StorageError wraps persistence failures. The core never retries; the
// underlying error is preserved for diagnostics at the boundary.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage: %v", e.Err)
}

func (e StorageError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsSeatTaken(err error) bool {
	var target SeatTakenError
	return errors.As(err, &target)
}

func IsBusTypeMismatch(err error) bool {
	var target BusTypeMismatchError
	return errors.As(err, &target)
}

func IsDestructiveConflict(err error) bool {
	var target DestructiveConflictError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target StorageError
	return errors.As(err, &target)
}
