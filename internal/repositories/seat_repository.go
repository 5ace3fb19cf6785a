package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/adnanmouslli/trip-manager/internal/domain"
	"github.com/adnanmouslli/trip-manager/internal/domain/models"
)

type SeatRepository struct {
	DB *sql.DB
}

// SeatPosition is one slot of a freshly generated layout, before it gets an id.
type SeatPosition struct {
	Row    int
	Col    int
	Number int
}

// ReplaceLayout atomically swaps a bus type's seat grid. It refuses with
// DestructiveConflict while any reservation still references a seat of this
// bus type; the reference count is taken with a locking read inside the same
// transaction as the delete, so an in-flight reserve either lands before the
// count (and blocks the swap) or after the new grid exists.
func (r SeatRepository) ReplaceLayout(ctx context.Context, busTypeID int64, grid models.SeatMapLayout, positions []SeatPosition) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.StorageError{Op: "begin layout tx", Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// The locking read proves the bus type exists and serializes concurrent
	// regenerations of the same grid.
	var lockedID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM bus_types WHERE id = ? FOR UPDATE`, busTypeID).Scan(&lockedID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "bus type"}
	}
	if err != nil {
		return domain.StorageError{Op: "lock bus type", Err: err}
	}

	var refs int64
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM reservations r
		JOIN seats s ON s.id = r.seat_id
		WHERE s.bus_type_id = ?
		FOR UPDATE`, busTypeID).Scan(&refs)
	if err != nil {
		return domain.StorageError{Op: "count seat references", Err: err}
	}
	if refs > 0 {
		return domain.DestructiveConflictError{Resource: "seat layout", Refs: refs}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM trip_seats WHERE seat_id IN (SELECT id FROM seats WHERE bus_type_id = ?)`, busTypeID); err != nil {
		return domain.StorageError{Op: "clear trip seat overrides", Err: err}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM seats WHERE bus_type_id = ?`, busTypeID); err != nil {
		return domain.StorageError{Op: "delete seats", Err: err}
	}

	if len(positions) > 0 {
		var sb strings.Builder
		sb.WriteString(`INSERT INTO seats (bus_type_id, seat_row, seat_col, number, status) VALUES `)
		args := make([]any, 0, len(positions)*5)
		for i, p := range positions {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString("(?, ?, ?, ?, ?)")
			args = append(args, busTypeID, p.Row, p.Col, p.Number, string(domain.SeatAvailable))
		}
		if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
			return domain.StorageError{Op: "insert seats", Err: err}
		}
	}

	// No affected-rows check here: the driver reports rows changed, not rows
	// matched, so regenerating an identical grid reports 0. Existence was
	// settled by the locking read above.
	if _, err := tx.ExecContext(ctx, `
		UPDATE bus_types
		SET grid_rows = ?, left_seats = ?, right_seats = ?, last_row_seats = ?, seat_count = ?
		WHERE id = ?`,
		grid.Rows, grid.LeftSeats, grid.RightSeats, grid.LastRowSeats, len(positions), busTypeID); err != nil {
		return domain.StorageError{Op: "update bus type grid", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return domain.StorageError{Op: "commit layout tx", Err: err}
	}
	committed = true
	return nil
}

func (r SeatRepository) ListByBusType(ctx context.Context, busTypeID int64) ([]models.Seat, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, bus_type_id, seat_row, seat_col, number, status
		FROM seats
		WHERE bus_type_id = ?
		ORDER BY seat_row ASC, seat_col ASC`, busTypeID)
	if err != nil {
		return nil, domain.StorageError{Op: "list seats", Err: err}
	}
	defer rows.Close()

	out := []models.Seat{}
	for rows.Next() {
		var s models.Seat
		var status string
		if err := rows.Scan(&s.ID, &s.BusTypeID, &s.Row, &s.Col, &s.Number, &status); err != nil {
			return out, domain.StorageError{Op: "scan seat", Err: err}
		}
		s.Status = domain.SeatStatus(status)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return out, domain.StorageError{Op: "list seats", Err: err}
	}
	return out, nil
}

func (r SeatRepository) GetByID(ctx context.Context, id int64) (models.Seat, error) {
	var s models.Seat
	var status string
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, bus_type_id, seat_row, seat_col, number, status
		FROM seats WHERE id = ?`, id).Scan(&s.ID, &s.BusTypeID, &s.Row, &s.Col, &s.Number, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return s, domain.NotFoundError{Resource: "seat"}
	}
	if err != nil {
		return s, domain.StorageError{Op: "get seat", Err: err}
	}
	s.Status = domain.SeatStatus(status)
	return s, nil
}

// GetByIDTx reads a seat inside an open transaction, used by the reserve
// path so the bus-type check and the insert see the same snapshot.
func (r SeatRepository) GetByIDTx(ctx context.Context, tx *sql.Tx, id int64) (models.Seat, error) {
	var s models.Seat
	var status string
	err := tx.QueryRowContext(ctx, `
		SELECT id, bus_type_id, seat_row, seat_col, number, status
		FROM seats WHERE id = ?`, id).Scan(&s.ID, &s.BusTypeID, &s.Row, &s.Col, &s.Number, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return s, domain.NotFoundError{Resource: "seat"}
	}
	if err != nil {
		return s, domain.StorageError{Op: "get seat", Err: err}
	}
	s.Status = domain.SeatStatus(status)
	return s, nil
}

// UpdateDefaultStatus changes a seat's catalog default. The overlay API is
// the place for per-trip exceptions; this touches every trip using the type.
func (r SeatRepository) UpdateDefaultStatus(ctx context.Context, id int64, status domain.SeatStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE seats SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return domain.StorageError{Op: "update seat status", Err: err}
	}
	// 0 changed rows is ambiguous: missing seat, or already at this status.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var one int
		err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM seats WHERE id = ?`, id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "seat"}
		}
		if err != nil {
			return domain.StorageError{Op: "update seat status", Err: err}
		}
	}
	return nil
}
