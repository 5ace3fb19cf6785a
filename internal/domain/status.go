package domain

import "strings"

// SeatStatus is the closed set of seat states shared by the catalog default,
// the per-trip overlay and the merged seat-map view.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBlocked   SeatStatus = "blocked"
	SeatReserved  SeatStatus = "reserved"
	SeatHeld      SeatStatus = "held"
)

// ParseSeatStatus validates a raw status value against the allowed set.
func ParseSeatStatus(raw string) (SeatStatus, error) {
	switch s := SeatStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case SeatAvailable, SeatBlocked, SeatReserved, SeatHeld:
		return s, nil
	default:
		return "", ValidationError{Field: "status", Msg: "must be one of available, blocked, reserved, held"}
	}
}

// Reservable reports whether a seat with this effective status may still be
// reserved. A held seat stays reservable: the hold is a UI-side courtesy,
// not a confirmed booking, and must race-resolve against confirmations.
func (s SeatStatus) Reservable() bool {
	return s == SeatAvailable || s == SeatHeld
}

// TripStatus is the closed set of trip lifecycle states.
type TripStatus string

const (
	TripScheduled TripStatus = "scheduled"
	TripBoarding  TripStatus = "boarding"
	TripDeparted  TripStatus = "departed"
	TripCanceled  TripStatus = "canceled"
	TripCompleted TripStatus = "completed"
)

func ParseTripStatus(raw string) (TripStatus, error) {
	switch s := TripStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case TripScheduled, TripBoarding, TripDeparted, TripCanceled, TripCompleted:
		return s, nil
	default:
		return "", ValidationError{Field: "status", Msg: "must be one of scheduled, boarding, departed, canceled, completed"}
	}
}

// Roles accepted at signup. Route gating maps role to route groups.
const (
	RoleAdmin    = "admin"
	RoleBooking  = "booking"
	RoleOps      = "ops"
	RoleSecurity = "security"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleBooking, RoleOps, RoleSecurity:
		return true
	}
	return false
}
