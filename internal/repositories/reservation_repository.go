package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/adnanmouslli/trip-manager/internal/domain"
	"github.com/adnanmouslli/trip-manager/internal/domain/models"
)

type ReservationRepository struct {
	DB *sql.DB
}

const reservationCols = `id, trip_id, seat_id, passenger_name, phone, boarding_point, amount, paid, notes, created_by, created_at`

func scanReservation(row interface{ Scan(...any) error }) (models.Reservation, error) {
	var res models.Reservation
	var seatID sql.NullInt64
	var notes sql.NullString
	err := row.Scan(&res.ID, &res.TripID, &seatID, &res.PassengerName, &res.Phone,
		&res.BoardingPoint, &res.Amount, &res.Paid, &notes, &res.CreatedBy, &res.CreatedAt)
	if err != nil {
		return res, err
	}
	if seatID.Valid {
		v := seatID.Int64
		res.SeatID = &v
	}
	res.Notes = notes.String
	return res, nil
}

// InsertTx inserts a reservation inside an open transaction. A duplicate-key
// failure on (trip_id, seat_id) means another reservation holds the seat,
// possibly committed a moment ago by a concurrent request; it surfaces as
// SeatTaken so the insert itself is the conflict check.
func (r ReservationRepository) InsertTx(ctx context.Context, tx *sql.Tx, res *models.Reservation) error {
	var seatID any
	if res.SeatID != nil {
		seatID = *res.SeatID
	}
	result, err := tx.ExecContext(ctx, `
		INSERT INTO reservations (trip_id, seat_id, passenger_name, phone, boarding_point, amount, paid, notes, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.TripID, seatID, res.PassengerName, res.Phone, res.BoardingPoint,
		res.Amount, res.Paid, res.Notes, res.CreatedBy)
	if err != nil {
		if isDuplicateKey(err) && res.SeatID != nil {
			return domain.SeatTakenError{TripID: res.TripID, SeatID: *res.SeatID, Err: err}
		}
		return domain.StorageError{Op: "insert reservation", Err: err}
	}
	id, err := result.LastInsertId()
	if err != nil {
		return domain.StorageError{Op: "insert reservation", Err: err}
	}
	res.ID = id
	return nil
}

func (r ReservationRepository) GetByID(ctx context.Context, id int64) (models.Reservation, error) {
	res, err := scanReservation(r.DB.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return res, domain.NotFoundError{Resource: "reservation"}
	}
	if err != nil {
		return res, domain.StorageError{Op: "get reservation", Err: err}
	}
	return res, nil
}

// ListByTrip returns a trip's reservations in insertion order for stable
// pagination and report ordering.
func (r ReservationRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE trip_id = ? ORDER BY id ASC`, tripID)
	if err != nil {
		return nil, domain.StorageError{Op: "list reservations", Err: err}
	}
	defer rows.Close()

	out := []models.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return out, domain.StorageError{Op: "scan reservation", Err: err}
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return out, domain.StorageError{Op: "list reservations", Err: err}
	}
	return out, nil
}

func (r ReservationRepository) ListAll(ctx context.Context) ([]models.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+reservationCols+` FROM reservations ORDER BY id ASC`)
	if err != nil {
		return nil, domain.StorageError{Op: "list reservations", Err: err}
	}
	defer rows.Close()

	out := []models.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return out, domain.StorageError{Op: "scan reservation", Err: err}
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return out, domain.StorageError{Op: "list reservations", Err: err}
	}
	return out, nil
}

// ExistsForSeat reports whether any reservation references (tripID, seatID).
// Read-side only; the write path relies on the unique key, not this check.
func (r ReservationRepository) ExistsForSeat(ctx context.Context, tripID, seatID int64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, `
		SELECT 1 FROM reservations WHERE trip_id = ? AND seat_id = ? LIMIT 1`, tripID, seatID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, domain.StorageError{Op: "check reservation", Err: err}
	}
	return true, nil
}

// ReservationUpdate carries optional field changes; nil means leave as is.
// SeatID uses a double pointer so "move to no seat" is expressible.
type ReservationUpdate struct {
	SeatID        **int64
	PassengerName *string
	Phone         *string
	BoardingPoint *string
	Amount        *int64
	Paid          *bool
	Notes         *string
}

// UpdateFieldsTx applies non-seat and seat changes in one statement inside an
// open transaction. Seat moves hit the same unique key as inserts, so a
// concurrent claim of the target seat fails here as SeatTaken.
func (r ReservationRepository) UpdateFieldsTx(ctx context.Context, tx *sql.Tx, id int64, tripID int64, upd ReservationUpdate) error {
	sets := []string{}
	args := []any{}
	if upd.SeatID != nil {
		sets = append(sets, "seat_id = ?")
		if *upd.SeatID != nil {
			args = append(args, **upd.SeatID)
		} else {
			args = append(args, nil)
		}
	}
	if upd.PassengerName != nil {
		sets = append(sets, "passenger_name = ?")
		args = append(args, *upd.PassengerName)
	}
	if upd.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *upd.Phone)
	}
	if upd.BoardingPoint != nil {
		sets = append(sets, "boarding_point = ?")
		args = append(args, *upd.BoardingPoint)
	}
	if upd.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, *upd.Amount)
	}
	if upd.Paid != nil {
		sets = append(sets, "paid = ?")
		args = append(args, *upd.Paid)
	}
	if upd.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *upd.Notes)
	}
	if len(sets) == 0 {
		return nil
	}
	query := "UPDATE reservations SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isDuplicateKey(err) && upd.SeatID != nil && *upd.SeatID != nil {
			return domain.SeatTakenError{TripID: tripID, SeatID: **upd.SeatID, Err: err}
		}
		return domain.StorageError{Op: "update reservation", Err: err}
	}
	return nil
}

// UpdateFields wraps UpdateFieldsTx in its own short transaction for edits
// that do not move the seat; callers must not pass a seat change here.
func (r ReservationRepository) UpdateFields(ctx context.Context, id int64, tripID int64, upd ReservationUpdate) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.StorageError{Op: "begin update tx", Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := r.UpdateFieldsTx(ctx, tx, id, tripID, upd); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.StorageError{Op: "commit update tx", Err: err}
	}
	committed = true
	return nil
}

func (r ReservationRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return domain.StorageError{Op: "delete reservation", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "reservation"}
	}
	return nil
}

// PaymentsSummary aggregates a trip's takings for the ops dashboard.
type PaymentsSummary struct {
	TripID      int64 `json:"tripId"`
	TotalPaid   int64 `json:"totalPaid"`
	PaidCount   int   `json:"paidCount"`
	UnpaidCount int   `json:"unpaidCount"`
}

func (r ReservationRepository) SummarizePayments(ctx context.Context, tripID int64) (PaymentsSummary, error) {
	out := PaymentsSummary{TripID: tripID}
	err := r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN paid THEN amount ELSE 0 END), 0),
		       COALESCE(SUM(paid), 0),
		       COALESCE(SUM(NOT paid), 0)
		FROM reservations WHERE trip_id = ?`, tripID).Scan(&out.TotalPaid, &out.PaidCount, &out.UnpaidCount)
	if err != nil {
		return out, domain.StorageError{Op: "payments summary", Err: err}
	}
	return out, nil
}
