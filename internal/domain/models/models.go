package models

import (
	"time"

	"github.com/adnanmouslli/trip-manager/internal/domain"
)

// BusType is a named seating template shared by many trips. The grid shape
// fields describe the generated layout: rows of left+right blocks separated
// by the aisle, plus one extended last row.
type BusType struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	SeatCount    int    `json:"seatCount"`
	Rows         int    `json:"rows"`
	LeftSeats    int    `json:"leftSeats"`
	RightSeats   int    `json:"rightSeats"`
	LastRowSeats int    `json:"lastRowSeats"`
}

// Seat is one fixed position within a bus type's layout. Number is assigned
// in generation order: left block then right block per middle row, then the
// extended last row, starting at 1 with no gaps.
type Seat struct {
	ID        int64             `json:"id"`
	BusTypeID int64             `json:"busTypeId"`
	Row       int               `json:"row"`
	Col       int               `json:"col"`
	Number    int               `json:"number"`
	Status    domain.SeatStatus `json:"status"`
}

// Trip is one scheduled departure using a specific bus type.
type Trip struct {
	ID               int64             `json:"id"`
	BusTypeID        int64             `json:"busTypeId"`
	OriginLabel      string            `json:"originLabel"`
	DestinationLabel string            `json:"destinationLabel"`
	DriverName       string            `json:"driverName"`
	DepartureAt      time.Time         `json:"departureAt"`
	DurationMinutes  *int              `json:"durationMinutes,omitempty"`
	Status           domain.TripStatus `json:"status"`
	CreatedBy        int64             `json:"createdBy"`
}

// TripSeat overrides a seat's catalog status for a single trip, leaving the
// shared layout untouched so other trips keep their own state.
type TripSeat struct {
	ID     int64             `json:"id"`
	TripID int64             `json:"tripId"`
	SeatID int64             `json:"seatId"`
	Status domain.SeatStatus `json:"status"`
}

// Reservation binds a passenger to a trip, optionally to a specific seat.
// For a given trip at most one reservation may reference a given seat; the
// storage layer enforces this with a unique key on (trip_id, seat_id).
type Reservation struct {
	ID            int64     `json:"id"`
	TripID        int64     `json:"tripId"`
	SeatID        *int64    `json:"seatId,omitempty"`
	PassengerName string    `json:"passengerName"`
	Phone         string    `json:"phone"`
	BoardingPoint string    `json:"boardingPoint"`
	Amount        int64     `json:"amount"`
	Paid          bool      `json:"paid"`
	Notes         string    `json:"notes"`
	CreatedBy     int64     `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SecurityLog is an identity-verification record tied to a trip and
// optionally a reservation.
type SecurityLog struct {
	ID            int64     `json:"id"`
	TripID        int64     `json:"tripId"`
	ReservationID *int64    `json:"reservationId,omitempty"`
	NationalID    string    `json:"nationalId"`
	PersonName    string    `json:"personName"`
	Notes         string    `json:"notes"`
	RecordedBy    int64     `json:"recordedBy"`
	RecordedAt    time.Time `json:"recordedAt"`
}

// User is a staff account. Role gates which route groups are reachable.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

// SeatMapEntry is one seat in the merged per-trip view. Status precedence is
// reservation over trip override over catalog default.
type SeatMapEntry struct {
	SeatID        int64             `json:"seatId"`
	Row           int               `json:"row"`
	Col           int               `json:"col"`
	Number        int               `json:"number"`
	Status        domain.SeatStatus `json:"status"`
	ReservationID *int64            `json:"reservationId,omitempty"`
	PassengerName string            `json:"passengerName,omitempty"`
}

// SeatMap is the computed, non-persisted seat-status view for one trip.
type SeatMap struct {
	TripID    int64          `json:"tripId"`
	BusTypeID int64          `json:"busTypeId"`
	Layout    SeatMapLayout  `json:"layout"`
	Seats     []SeatMapEntry `json:"seats"`
}

type SeatMapLayout struct {
	Rows         int `json:"rows"`
	LeftSeats    int `json:"leftSeats"`
	RightSeats   int `json:"rightSeats"`
	LastRowSeats int `json:"lastRowSeats"`
}
