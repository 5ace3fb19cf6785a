package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/adnanmouslli/trip-manager/internal/domain"
	"github.com/adnanmouslli/trip-manager/internal/domain/models"
	"github.com/adnanmouslli/trip-manager/internal/repositories"
)

// ReservationService is the only writer of the reservation ledger. Seat
// conflicts are decided by the storage unique key, never by a prior read.
type ReservationService struct {
	DB           *sql.DB
	Trips        repositories.TripRepository
	Seats        repositories.SeatRepository
	TripSeats    repositories.TripSeatRepository
	Reservations repositories.ReservationRepository
}

// ReserveInput is a reservation request as it arrives from the booking desk.
type ReserveInput struct {
	TripID        int64
	SeatID        *int64
	PassengerName string
	Phone         string
	BoardingPoint string
	Amount        int64
	Notes         string
	CreatedBy     int64
}

// Reserve books a passenger onto a trip. When a seat is requested, the
// bus-type check, the effective-status check and the insert run in one
// transaction; the unique key on (trip_id, seat_id) settles races between
// concurrent requests for the same seat.
func (s ReservationService) Reserve(ctx context.Context, in ReserveInput) (models.Reservation, error) {
	var zero models.Reservation
	if strings.TrimSpace(in.PassengerName) == "" {
		return zero, domain.ValidationError{Field: "passengerName", Msg: "required"}
	}
	if in.Amount < 0 {
		return zero, domain.ValidationError{Field: "amount", Msg: "must not be negative"}
	}

	trip, err := s.Trips.GetByID(ctx, in.TripID)
	if err != nil {
		return zero, err
	}

	res := models.Reservation{
		TripID:        in.TripID,
		SeatID:        in.SeatID,
		PassengerName: strings.TrimSpace(in.PassengerName),
		Phone:         strings.TrimSpace(in.Phone),
		BoardingPoint: strings.TrimSpace(in.BoardingPoint),
		Amount:        in.Amount,
		Paid:          in.Amount > 0,
		Notes:         in.Notes,
		CreatedBy:     in.CreatedBy,
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return zero, domain.StorageError{Op: "begin reserve tx", Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if in.SeatID != nil {
		seat, err := s.Seats.GetByIDTx(ctx, tx, *in.SeatID)
		if err != nil {
			return zero, err
		}
		if seat.BusTypeID != trip.BusTypeID {
			return zero, domain.BusTypeMismatchError{SeatID: seat.ID, BusTypeID: trip.BusTypeID}
		}
		status := seat.Status
		if override, ok, err := s.TripSeats.StatusTx(ctx, tx, in.TripID, seat.ID); err != nil {
			return zero, err
		} else if ok {
			status = override
		}
		if !status.Reservable() {
			return zero, domain.SeatTakenError{TripID: in.TripID, SeatID: seat.ID}
		}
	}

	if err := s.Reservations.InsertTx(ctx, tx, &res); err != nil {
		return zero, err
	}
	if err := tx.Commit(); err != nil {
		return zero, domain.StorageError{Op: "commit reserve tx", Err: err}
	}
	committed = true
	return s.Reservations.GetByID(ctx, res.ID)
}

// Update edits a reservation. A seat change repeats the full reserve check
// against the target seat in a transaction; everything else is a plain field
// update and never fails on seat state.
func (s ReservationService) Update(ctx context.Context, id int64, upd repositories.ReservationUpdate) (models.Reservation, error) {
	var zero models.Reservation
	current, err := s.Reservations.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if upd.PassengerName != nil && strings.TrimSpace(*upd.PassengerName) == "" {
		return zero, domain.ValidationError{Field: "passengerName", Msg: "must not be empty"}
	}
	if upd.Amount != nil && *upd.Amount < 0 {
		return zero, domain.ValidationError{Field: "amount", Msg: "must not be negative"}
	}

	seatChanging := upd.SeatID != nil && !sameSeat(current.SeatID, *upd.SeatID)
	if !seatChanging {
		upd.SeatID = nil
		if err := s.Reservations.UpdateFields(ctx, id, current.TripID, upd); err != nil {
			return zero, err
		}
		return s.Reservations.GetByID(ctx, id)
	}

	trip, err := s.Trips.GetByID(ctx, current.TripID)
	if err != nil {
		return zero, err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return zero, domain.StorageError{Op: "begin update tx", Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if target := *upd.SeatID; target != nil {
		seat, err := s.Seats.GetByIDTx(ctx, tx, *target)
		if err != nil {
			return zero, err
		}
		if seat.BusTypeID != trip.BusTypeID {
			return zero, domain.BusTypeMismatchError{SeatID: seat.ID, BusTypeID: trip.BusTypeID}
		}
		status := seat.Status
		if override, ok, err := s.TripSeats.StatusTx(ctx, tx, current.TripID, seat.ID); err != nil {
			return zero, err
		} else if ok {
			status = override
		}
		if !status.Reservable() {
			return zero, domain.SeatTakenError{TripID: current.TripID, SeatID: seat.ID}
		}
	}

	if err := s.Reservations.UpdateFieldsTx(ctx, tx, id, current.TripID, upd); err != nil {
		return zero, err
	}
	if err := tx.Commit(); err != nil {
		return zero, domain.StorageError{Op: "commit update tx", Err: err}
	}
	committed = true
	return s.Reservations.GetByID(ctx, id)
}

func sameSeat(a *int64, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// IsSeatReservable is an advisory read for the booking UI. The answer can go
// stale the moment it is returned; Reserve remains the authority.
func (s ReservationService) IsSeatReservable(ctx context.Context, tripID, seatID int64) (bool, error) {
	trip, err := s.Trips.GetByID(ctx, tripID)
	if err != nil {
		return false, err
	}
	seat, err := s.Seats.GetByID(ctx, seatID)
	if err != nil {
		return false, err
	}
	if seat.BusTypeID != trip.BusTypeID {
		return false, nil
	}
	taken, err := s.Reservations.ExistsForSeat(ctx, tripID, seatID)
	if err != nil {
		return false, err
	}
	if taken {
		return false, nil
	}
	status := seat.Status
	if overrides, err := s.TripSeats.MapByTrip(ctx, tripID); err != nil {
		return false, err
	} else if override, ok := overrides[seatID]; ok {
		status = override
	}
	return status.Reservable(), nil
}

// Release deletes a reservation, freeing its seat for the next claim.
func (s ReservationService) Release(ctx context.Context, id int64) error {
	return s.Reservations.Delete(ctx, id)
}

func (s ReservationService) Get(ctx context.Context, id int64) (models.Reservation, error) {
	return s.Reservations.GetByID(ctx, id)
}

// ListForTrip returns a trip's reservations in insertion order.
func (s ReservationService) ListForTrip(ctx context.Context, tripID int64) ([]models.Reservation, error) {
	if _, err := s.Trips.GetByID(ctx, tripID); err != nil {
		return nil, err
	}
	return s.Reservations.ListByTrip(ctx, tripID)
}

// ListAll returns the full ledger across trips for back-office exports.
func (s ReservationService) ListAll(ctx context.Context) ([]models.Reservation, error) {
	return s.Reservations.ListAll(ctx)
}

func (s ReservationService) PaymentsSummary(ctx context.Context, tripID int64) (repositories.PaymentsSummary, error) {
	if _, err := s.Trips.GetByID(ctx, tripID); err != nil {
		return repositories.PaymentsSummary{}, err
	}
	return s.Reservations.SummarizePayments(ctx, tripID)
}
