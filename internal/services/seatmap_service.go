package services

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/adnanmouslli/trip-manager/internal/domain"
	"github.com/adnanmouslli/trip-manager/internal/domain/models"
	"github.com/adnanmouslli/trip-manager/internal/repositories"
)

// SeatMapService computes the merged per-trip seat view. It never writes
// seat state except through the override overlay.
type SeatMapService struct {
	Trips        repositories.TripRepository
	BusTypes     repositories.BusTypeRepository
	Seats        repositories.SeatRepository
	TripSeats    repositories.TripSeatRepository
	Reservations repositories.ReservationRepository
}

// mergeSeatMap folds the three layers into one entry per seat. Precedence is
// reservation over trip override over catalog default, so a booked seat shows
// reserved even if an override says otherwise.
func mergeSeatMap(seats []models.Seat, overrides map[int64]domain.SeatStatus, reservations []models.Reservation) []models.SeatMapEntry {
	byseat := map[int64]*models.Reservation{}
	for i := range reservations {
		if reservations[i].SeatID != nil {
			byseat[*reservations[i].SeatID] = &reservations[i]
		}
	}
	out := make([]models.SeatMapEntry, 0, len(seats))
	for _, seat := range seats {
		entry := models.SeatMapEntry{
			SeatID: seat.ID,
			Row:    seat.Row,
			Col:    seat.Col,
			Number: seat.Number,
			Status: seat.Status,
		}
		if override, ok := overrides[seat.ID]; ok {
			entry.Status = override
		}
		if res, ok := byseat[seat.ID]; ok {
			entry.Status = domain.SeatReserved
			id := res.ID
			entry.ReservationID = &id
			entry.PassengerName = res.PassengerName
		}
		out = append(out, entry)
	}
	return out
}

// Build assembles the seat map for one trip. The three reads are independent
// snapshots taken in parallel; a reservation committed between them can make
// the view momentarily stale, which the reserve path tolerates by deciding
// conflicts at insert time.
func (s SeatMapService) Build(ctx context.Context, tripID int64) (models.SeatMap, error) {
	trip, err := s.Trips.GetByID(ctx, tripID)
	if err != nil {
		return models.SeatMap{}, err
	}
	busType, err := s.BusTypes.GetByID(ctx, trip.BusTypeID)
	if err != nil {
		return models.SeatMap{}, err
	}

	var (
		seats        []models.Seat
		overrides    map[int64]domain.SeatStatus
		reservations []models.Reservation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		seats, err = s.Seats.ListByBusType(gctx, trip.BusTypeID)
		return err
	})
	g.Go(func() error {
		var err error
		overrides, err = s.TripSeats.MapByTrip(gctx, tripID)
		return err
	})
	g.Go(func() error {
		var err error
		reservations, err = s.Reservations.ListByTrip(gctx, tripID)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.SeatMap{}, err
	}

	return models.SeatMap{
		TripID:    tripID,
		BusTypeID: trip.BusTypeID,
		Layout: models.SeatMapLayout{
			Rows:         busType.Rows,
			LeftSeats:    busType.LeftSeats,
			RightSeats:   busType.RightSeats,
			LastRowSeats: busType.LastRowSeats,
		},
		Seats: mergeSeatMap(seats, overrides, reservations),
	}, nil
}

// ListAvailableSeatIDs returns the ids a reserve call would currently accept,
// ascending. It derives from the same merge as Build so the two views can
// never disagree about a seat.
func (s SeatMapService) ListAvailableSeatIDs(ctx context.Context, tripID int64) ([]int64, error) {
	sm, err := s.Build(ctx, tripID)
	if err != nil {
		return nil, err
	}
	out := []int64{}
	for _, entry := range sm.Seats {
		if entry.ReservationID == nil && entry.Status.Reservable() {
			out = append(out, entry.SeatID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// SetOverride records a per-trip status exception for one seat. Reserved is
// not settable here; booked state comes from the ledger only.
func (s SeatMapService) SetOverride(ctx context.Context, tripID, seatID int64, raw string) error {
	status, err := domain.ParseSeatStatus(raw)
	if err != nil {
		return err
	}
	if status == domain.SeatReserved {
		return domain.ValidationError{Field: "status", Msg: "reserved is set only through a successful reservation"}
	}
	trip, err := s.Trips.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	seat, err := s.Seats.GetByID(ctx, seatID)
	if err != nil {
		return err
	}
	if seat.BusTypeID != trip.BusTypeID {
		return domain.BusTypeMismatchError{SeatID: seatID, BusTypeID: trip.BusTypeID}
	}
	return s.TripSeats.Upsert(ctx, tripID, seatID, status)
}
