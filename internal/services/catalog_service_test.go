package services

import (
	"context"
	"testing"

	"github.com/adnanmouslli/trip-manager/internal/domain"
)

func TestSeatPositionsLayout(t *testing.T) {
	positions := seatPositions(2, 2, 2, 3)

	if len(positions) != 11 {
		t.Fatalf("expected 11 seats, got %d", len(positions))
	}
	for i, p := range positions {
		if p.Number != i+1 {
			t.Fatalf("seat %d numbered %d, want %d", i, p.Number, i+1)
		}
	}
	// row 1: left block cols 1-2 then right block cols 3-4
	if positions[0].Row != 1 || positions[0].Col != 1 {
		t.Fatalf("first seat at (%d,%d), want (1,1)", positions[0].Row, positions[0].Col)
	}
	if positions[3].Row != 1 || positions[3].Col != 4 {
		t.Fatalf("seat 4 at (%d,%d), want (1,4)", positions[3].Row, positions[3].Col)
	}
	// extended last row sits at rows+1
	last := positions[10]
	if last.Row != 3 || last.Col != 3 {
		t.Fatalf("last seat at (%d,%d), want (3,3)", last.Row, last.Col)
	}

	// same input, same output
	again := seatPositions(2, 2, 2, 3)
	for i := range positions {
		if positions[i] != again[i] {
			t.Fatalf("layout not deterministic at index %d", i)
		}
	}
}

func TestSeatPositionsWithoutLastRow(t *testing.T) {
	positions := seatPositions(3, 2, 1, 0)
	if len(positions) != 9 {
		t.Fatalf("expected 9 seats, got %d", len(positions))
	}
	for _, p := range positions {
		if p.Row > 3 {
			t.Fatalf("unexpected extended row seat at (%d,%d)", p.Row, p.Col)
		}
	}
}

func TestGenerateLayoutRejectsBadGrid(t *testing.T) {
	svc := CatalogService{}

	if _, err := svc.GenerateLayout(context.Background(), 1, -1, 2, 2, 0); !domain.IsValidation(err) {
		t.Fatalf("negative rows: got %v, want validation error", err)
	}
	if _, err := svc.GenerateLayout(context.Background(), 1, 0, 0, 0, 0); !domain.IsValidation(err) {
		t.Fatalf("empty layout: got %v, want validation error", err)
	}
}

func TestSetDefaultSeatStatusRejectsReserved(t *testing.T) {
	svc := CatalogService{}

	if _, err := svc.SetDefaultSeatStatus(context.Background(), 1, "reserved"); !domain.IsValidation(err) {
		t.Fatalf("got %v, want validation error", err)
	}
	if _, err := svc.SetDefaultSeatStatus(context.Background(), 1, "broken"); !domain.IsValidation(err) {
		t.Fatalf("got %v, want validation error", err)
	}
}
