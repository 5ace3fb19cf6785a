package services

import (
	"testing"
	"time"

	"github.com/adnanmouslli/trip-manager/internal/domain"
	"github.com/adnanmouslli/trip-manager/internal/domain/models"
)

func seatFixture() []models.Seat {
	return []models.Seat{
		{ID: 1, BusTypeID: 1, Row: 1, Col: 1, Number: 1, Status: domain.SeatAvailable},
		{ID: 2, BusTypeID: 1, Row: 1, Col: 2, Number: 2, Status: domain.SeatAvailable},
		{ID: 3, BusTypeID: 1, Row: 1, Col: 3, Number: 3, Status: domain.SeatBlocked},
		{ID: 4, BusTypeID: 1, Row: 1, Col: 4, Number: 4, Status: domain.SeatAvailable},
	}
}

func TestMergeSeatMapPrecedence(t *testing.T) {
	seatID := int64(2)
	overrides := map[int64]domain.SeatStatus{
		2: domain.SeatHeld,      // overridden but also reserved: reservation wins
		4: domain.SeatBlocked,   // override wins over catalog default
		3: domain.SeatAvailable, // override opens a blocked seat
	}
	reservations := []models.Reservation{
		{ID: 77, TripID: 9, SeatID: &seatID, PassengerName: "Huda", CreatedAt: time.Now()},
	}

	entries := mergeSeatMap(seatFixture(), overrides, reservations)
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	byID := map[int64]models.SeatMapEntry{}
	for _, e := range entries {
		byID[e.SeatID] = e
	}

	if byID[1].Status != domain.SeatAvailable {
		t.Fatalf("seat 1: got %s, want catalog default available", byID[1].Status)
	}
	if byID[2].Status != domain.SeatReserved {
		t.Fatalf("seat 2: got %s, want reserved (reservation beats override)", byID[2].Status)
	}
	if byID[2].ReservationID == nil || *byID[2].ReservationID != 77 {
		t.Fatalf("seat 2: reservation id not carried into the view")
	}
	if byID[2].PassengerName != "Huda" {
		t.Fatalf("seat 2: passenger name not carried into the view")
	}
	if byID[3].Status != domain.SeatAvailable {
		t.Fatalf("seat 3: got %s, want available (override beats default)", byID[3].Status)
	}
	if byID[4].Status != domain.SeatBlocked {
		t.Fatalf("seat 4: got %s, want blocked", byID[4].Status)
	}
}

// The availability listing must agree with the seat map: a seat is listed
// exactly when its merged entry is reservable and unclaimed.
func TestMergeSeatMapAvailabilityAgreement(t *testing.T) {
	seatID := int64(1)
	overrides := map[int64]domain.SeatStatus{4: domain.SeatHeld}
	reservations := []models.Reservation{
		{ID: 10, TripID: 9, SeatID: &seatID},
		{ID: 11, TripID: 9, SeatID: nil}, // unseated, claims nothing
	}

	entries := mergeSeatMap(seatFixture(), overrides, reservations)

	available := []int64{}
	for _, e := range entries {
		if e.ReservationID == nil && e.Status.Reservable() {
			available = append(available, e.SeatID)
		}
	}

	// seat 1 reserved, seat 3 blocked, seat 4 held (still reservable)
	want := []int64{2, 4}
	if len(available) != len(want) {
		t.Fatalf("available %v, want %v", available, want)
	}
	for i := range want {
		if available[i] != want[i] {
			t.Fatalf("available %v, want %v", available, want)
		}
	}
}

func TestMergeSeatMapEmptyLayers(t *testing.T) {
	entries := mergeSeatMap(seatFixture(), map[int64]domain.SeatStatus{}, nil)
	for _, e := range entries {
		if e.ReservationID != nil {
			t.Fatalf("seat %d claims a reservation with an empty ledger", e.SeatID)
		}
	}
	if entries[2].Status != domain.SeatBlocked {
		t.Fatalf("catalog default lost without overlay")
	}
}
