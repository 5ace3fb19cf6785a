package services

import (
	"context"
	"testing"
	"time"

	"github.com/adnanmouslli/trip-manager/internal/domain/models"
)

func TestDocsServiceGenerateTicket(t *testing.T) {
	loader := func(_ context.Context, id int64) (ticketDocData, error) {
		return ticketDocData{
			ReservationID: id,
			TripID:        9,
			PassengerName: "Tester",
			Phone:         "0930000000",
			BoardingPoint: "Garage",
			SeatNumber:    7,
			Origin:        "Damascus",
			Destination:   "Aleppo",
			DriverName:    "Sami",
			DepartureAt:   time.Now(),
			Amount:        50000,
			Paid:          true,
		}, nil
	}

	svc := DocsService{TicketLoader: loader}

	pdf, filename, err := svc.GenerateTicket(context.Background(), 33)
	if err != nil {
		t.Fatalf("GenerateTicket returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateTicket returned empty data")
	}
}

func TestDocsServiceGenerateTripReport(t *testing.T) {
	seatA := int64(1)
	loader := func(_ context.Context, id int64) (reportDocData, error) {
		return reportDocData{
			TripID:      id,
			Origin:      "Damascus",
			Destination: "Aleppo",
			DriverName:  "Sami",
			BusTypeName: "VIP 2+1",
			DepartureAt: time.Now(),
			Reservations: []models.Reservation{
				{ID: 1, TripID: id, SeatID: &seatA, PassengerName: "Huda", BoardingPoint: "Garage", Amount: 50000, Paid: true},
				{ID: 2, TripID: id, PassengerName: "Omar", BoardingPoint: "Midan", Amount: 45000},
			},
			SeatNumbers: map[int64]int{1: 7},
		}, nil
	}

	svc := DocsService{ReportLoader: loader}

	pdf, filename, err := svc.GenerateTripReport(context.Background(), 9)
	if err != nil {
		t.Fatalf("GenerateTripReport returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateTripReport returned empty data")
	}
}
