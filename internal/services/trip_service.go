package services

import (
	"context"
	"time"

	"github.com/adnanmouslli/trip-manager/internal/domain"
	"github.com/adnanmouslli/trip-manager/internal/domain/models"
	"github.com/adnanmouslli/trip-manager/internal/repositories"
)

type TripService struct {
	Trips        repositories.TripRepository
	BusTypes     repositories.BusTypeRepository
	Reservations repositories.ReservationRepository
}

// TripInput is a trip as submitted by the admin UI.
type TripInput struct {
	BusTypeID        int64
	OriginLabel      string
	DestinationLabel string
	DriverName       string
	DepartureAt      time.Time
	DurationMinutes  *int
	CreatedBy        int64
}

func (s TripService) Create(ctx context.Context, in TripInput) (models.Trip, error) {
	var zero models.Trip
	if in.DepartureAt.IsZero() {
		return zero, domain.ValidationError{Field: "departureAt", Msg: "required"}
	}
	if in.DurationMinutes != nil && *in.DurationMinutes <= 0 {
		return zero, domain.ValidationError{Field: "durationMinutes", Msg: "must be positive"}
	}
	if _, err := s.BusTypes.GetByID(ctx, in.BusTypeID); err != nil {
		return zero, err
	}
	trip := models.Trip{
		BusTypeID:        in.BusTypeID,
		OriginLabel:      in.OriginLabel,
		DestinationLabel: in.DestinationLabel,
		DriverName:       in.DriverName,
		DepartureAt:      in.DepartureAt,
		DurationMinutes:  in.DurationMinutes,
		Status:           domain.TripScheduled,
		CreatedBy:        in.CreatedBy,
	}
	if err := s.Trips.Create(ctx, &trip); err != nil {
		return zero, err
	}
	return trip, nil
}

func (s TripService) Get(ctx context.Context, id int64) (models.Trip, error) {
	return s.Trips.GetByID(ctx, id)
}

func (s TripService) List(ctx context.Context) ([]repositories.TripListing, error) {
	return s.Trips.List(ctx)
}

// Update applies partial changes. A bus-type change is refused once seated
// reservations exist, because their seats belong to the old layout.
func (s TripService) Update(ctx context.Context, id int64, upd repositories.TripUpdate) (models.Trip, error) {
	var zero models.Trip
	current, err := s.Trips.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if upd.Status != nil {
		parsed, err := domain.ParseTripStatus(string(*upd.Status))
		if err != nil {
			return zero, err
		}
		*upd.Status = parsed
	}
	if upd.BusTypeID != nil && *upd.BusTypeID != current.BusTypeID {
		if _, err := s.BusTypes.GetByID(ctx, *upd.BusTypeID); err != nil {
			return zero, err
		}
		existing, err := s.Reservations.ListByTrip(ctx, id)
		if err != nil {
			return zero, err
		}
		for _, res := range existing {
			if res.SeatID != nil {
				return zero, domain.ConflictError{Resource: "trip", Msg: "seated reservations reference the current bus type"}
			}
		}
	}
	if err := s.Trips.Update(ctx, id, upd); err != nil {
		return zero, err
	}
	return s.Trips.GetByID(ctx, id)
}

func (s TripService) Delete(ctx context.Context, id int64) error {
	return s.Trips.Delete(ctx, id)
}
