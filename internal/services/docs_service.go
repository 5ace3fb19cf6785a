package services

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/adnanmouslli/trip-manager/internal/domain/models"
	"github.com/adnanmouslli/trip-manager/internal/repositories"
	"github.com/adnanmouslli/trip-manager/internal/utils"
)

// DocsService renders passenger tickets and trip reports as PDFs.
type DocsService struct {
	Trips        repositories.TripRepository
	BusTypes     repositories.BusTypeRepository
	Seats        repositories.SeatRepository
	Reservations repositories.ReservationRepository
	RequestID    string
	TicketLoader func(context.Context, int64) (ticketDocData, error)
	ReportLoader func(context.Context, int64) (reportDocData, error)
}

type ticketDocData struct {
	ReservationID int64
	TripID        int64
	PassengerName string
	Phone         string
	BoardingPoint string
	SeatNumber    int
	Origin        string
	Destination   string
	DriverName    string
	DepartureAt   time.Time
	Amount        int64
	Paid          bool
}

type reportDocData struct {
	TripID       int64
	Origin       string
	Destination  string
	DriverName   string
	BusTypeName  string
	DepartureAt  time.Time
	Reservations []models.Reservation
	SeatNumbers  map[int64]int
}

func (s DocsService) GenerateTicket(ctx context.Context, reservationID int64) ([]byte, string, error) {
	data, err := s.loadTicketDocData(ctx, reservationID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_ticket", fmt.Sprintf("reservation_id=%d", reservationID))
	return buildTicketPDF(data)
}

func (s DocsService) GenerateTripReport(ctx context.Context, tripID int64) ([]byte, string, error) {
	data, err := s.loadReportDocData(ctx, tripID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_trip_report", fmt.Sprintf("trip_id=%d", tripID))
	return buildTripReportPDF(data)
}

func (s DocsService) loadTicketDocData(ctx context.Context, reservationID int64) (ticketDocData, error) {
	if s.TicketLoader != nil {
		return s.TicketLoader(ctx, reservationID)
	}
	var out ticketDocData
	res, err := s.Reservations.GetByID(ctx, reservationID)
	if err != nil {
		return out, err
	}
	trip, err := s.Trips.GetByID(ctx, res.TripID)
	if err != nil {
		return out, err
	}
	out = ticketDocData{
		ReservationID: res.ID,
		TripID:        res.TripID,
		PassengerName: res.PassengerName,
		Phone:         res.Phone,
		BoardingPoint: res.BoardingPoint,
		Origin:        trip.OriginLabel,
		Destination:   trip.DestinationLabel,
		DriverName:    trip.DriverName,
		DepartureAt:   trip.DepartureAt,
		Amount:        res.Amount,
		Paid:          res.Paid,
	}
	if res.SeatID != nil {
		if seat, err := s.Seats.GetByID(ctx, *res.SeatID); err == nil {
			out.SeatNumber = seat.Number
		}
	}
	return out, nil
}

func (s DocsService) loadReportDocData(ctx context.Context, tripID int64) (reportDocData, error) {
	if s.ReportLoader != nil {
		return s.ReportLoader(ctx, tripID)
	}
	var out reportDocData
	trip, err := s.Trips.GetByID(ctx, tripID)
	if err != nil {
		return out, err
	}
	busType, err := s.BusTypes.GetByID(ctx, trip.BusTypeID)
	if err != nil {
		return out, err
	}
	reservations, err := s.Reservations.ListByTrip(ctx, tripID)
	if err != nil {
		return out, err
	}
	numbers := map[int64]int{}
	if seats, err := s.Seats.ListByBusType(ctx, trip.BusTypeID); err == nil {
		for _, seat := range seats {
			numbers[seat.ID] = seat.Number
		}
	}
	return reportDocData{
		TripID:       tripID,
		Origin:       trip.OriginLabel,
		Destination:  trip.DestinationLabel,
		DriverName:   trip.DriverName,
		BusTypeName:  busType.Name,
		DepartureAt:  trip.DepartureAt,
		Reservations: reservations,
		SeatNumbers:  numbers,
	}, nil
}

func buildTicketPDF(d ticketDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS TICKET")
	pdf.Ln(12)

	seat := "-"
	if d.SeatNumber > 0 {
		seat = fmt.Sprintf("%d", d.SeatNumber)
	}
	payment := "UNPAID"
	if d.Paid {
		payment = "PAID"
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger     : %s", docSafe(d.PassengerName, "-")),
		fmt.Sprintf("Phone         : %s", docSafe(d.Phone, "-")),
		fmt.Sprintf("Seat          : %s", seat),
		fmt.Sprintf("Route         : %s -> %s", docSafe(d.Origin, "-"), docSafe(d.Destination, "-")),
		fmt.Sprintf("Departure     : %s", d.DepartureAt.Format("2006-01-02 15:04")),
		fmt.Sprintf("Boarding at   : %s", docSafe(d.BoardingPoint, "-")),
		fmt.Sprintf("Driver        : %s", docSafe(d.DriverName, "-")),
		fmt.Sprintf("Amount        : %d (%s)", d.Amount, payment),
		fmt.Sprintf("Ticket code   : TCK-%d-%d", d.TripID, d.ReservationID),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This ticket admits one passenger. Present it at boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("TICKET_%d_%s.pdf", d.ReservationID, docFilenamePart(d.PassengerName))
	return buf.Bytes(), filename, nil
}

func buildTripReportPDF(d reportDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Report", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP PASSENGER REPORT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Trip      : #%d  %s -> %s", d.TripID, docSafe(d.Origin, "-"), docSafe(d.Destination, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Departure : %s", d.DepartureAt.Format("2006-01-02 15:04")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Bus       : %s   Driver: %s", docSafe(d.BusTypeName, "-"), docSafe(d.DriverName, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Generated : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	groups := map[string][]models.Reservation{}
	points := []string{}
	for _, res := range d.Reservations {
		point := docSafe(res.BoardingPoint, "(no boarding point)")
		if _, ok := groups[point]; !ok {
			points = append(points, point)
		}
		groups[point] = append(groups[point], res)
	}
	sort.Strings(points)

	var total int64
	for _, point := range points {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Boarding: "+point)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, res := range groups[point] {
			seat := "-"
			if res.SeatID != nil {
				if n, ok := d.SeatNumbers[*res.SeatID]; ok {
					seat = fmt.Sprintf("%d", n)
				}
			}
			payment := "unpaid"
			if res.Paid {
				payment = "paid"
			}
			pdf.Cell(0, 6, fmt.Sprintf("  seat %-4s %-30s %-14s %8d %s",
				seat, docSafe(res.PassengerName, "-"), docSafe(res.Phone, "-"), res.Amount, payment))
			pdf.Ln(6)
			if res.Paid {
				total += res.Amount
			}
		}
		pdf.Ln(2)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Passengers: %d   Total paid: %d", len(d.Reservations), total))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("TRIP_REPORT_%d.pdf", d.TripID)
	return buf.Bytes(), filename, nil
}

func docSafe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func docFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
