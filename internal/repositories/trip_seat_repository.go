package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/adnanmouslli/trip-manager/internal/domain"
)

type TripSeatRepository struct {
	DB *sql.DB
}

// Upsert writes the single override row for (tripID, seatID). The unique key
// on the pair turns a concurrent double-write into a last-writer-wins update.
func (r TripSeatRepository) Upsert(ctx context.Context, tripID, seatID int64, status domain.SeatStatus) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO trip_seats (trip_id, seat_id, status) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE status = VALUES(status)`,
		tripID, seatID, string(status))
	if err != nil {
		return domain.StorageError{Op: "upsert trip seat", Err: err}
	}
	return nil
}

// MapByTrip returns seatID -> overriding status for one trip; empty map when
// the trip has no overrides.
func (r TripSeatRepository) MapByTrip(ctx context.Context, tripID int64) (map[int64]domain.SeatStatus, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT seat_id, status FROM trip_seats WHERE trip_id = ?`, tripID)
	if err != nil {
		return nil, domain.StorageError{Op: "list trip seats", Err: err}
	}
	defer rows.Close()

	out := map[int64]domain.SeatStatus{}
	for rows.Next() {
		var seatID int64
		var status string
		if err := rows.Scan(&seatID, &status); err != nil {
			return out, domain.StorageError{Op: "scan trip seat", Err: err}
		}
		out[seatID] = domain.SeatStatus(status)
	}
	if err := rows.Err(); err != nil {
		return out, domain.StorageError{Op: "list trip seats", Err: err}
	}
	return out, nil
}

// StatusTx returns the override for one (trip, seat) pair inside an open
// transaction, or ok=false when no override exists.
func (r TripSeatRepository) StatusTx(ctx context.Context, tx *sql.Tx, tripID, seatID int64) (domain.SeatStatus, bool, error) {
	var status string
	err := tx.QueryRowContext(ctx, `
		SELECT status FROM trip_seats WHERE trip_id = ? AND seat_id = ?`, tripID, seatID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, domain.StorageError{Op: "get trip seat", Err: err}
	}
	return domain.SeatStatus(status), true, nil
}
