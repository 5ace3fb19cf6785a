package domain

import "testing"

func TestParseSeatStatus(t *testing.T) {
	if s, err := ParseSeatStatus("  Blocked "); err != nil || s != SeatBlocked {
		t.Fatalf("got (%v, %v), want blocked", s, err)
	}
	if _, err := ParseSeatStatus("booked"); !IsValidation(err) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestReservable(t *testing.T) {
	cases := map[SeatStatus]bool{
		SeatAvailable: true,
		SeatHeld:      true,
		SeatBlocked:   false,
		SeatReserved:  false,
	}
	for status, want := range cases {
		if got := status.Reservable(); got != want {
			t.Fatalf("%s.Reservable() = %v, want %v", status, got, want)
		}
	}
}

func TestParseTripStatus(t *testing.T) {
	if s, err := ParseTripStatus("BOARDING"); err != nil || s != TripBoarding {
		t.Fatalf("got (%v, %v), want boarding", s, err)
	}
	if _, err := ParseTripStatus("delayed"); !IsValidation(err) {
		t.Fatalf("got %v, want validation error", err)
	}
}
