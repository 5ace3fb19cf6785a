package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/adnanmouslli/trip-manager/internal/domain"
	"github.com/adnanmouslli/trip-manager/internal/domain/models"
)

type BusTypeRepository struct {
	DB *sql.DB
}

func (r BusTypeRepository) Create(ctx context.Context, name string, seatCount int) (models.BusType, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO bus_types (name, seat_count) VALUES (?, ?)`, name, seatCount)
	if err != nil {
		return models.BusType{}, domain.StorageError{Op: "create bus type", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.BusType{}, domain.StorageError{Op: "create bus type", Err: err}
	}
	return models.BusType{ID: id, Name: name, SeatCount: seatCount}, nil
}

func (r BusTypeRepository) GetByID(ctx context.Context, id int64) (models.BusType, error) {
	var bt models.BusType
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, seat_count, grid_rows, left_seats, right_seats, last_row_seats
		FROM bus_types WHERE id = ?`, id).Scan(
		&bt.ID, &bt.Name, &bt.SeatCount, &bt.Rows, &bt.LeftSeats, &bt.RightSeats, &bt.LastRowSeats)
	if errors.Is(err, sql.ErrNoRows) {
		return bt, domain.NotFoundError{Resource: "bus type"}
	}
	if err != nil {
		return bt, domain.StorageError{Op: "get bus type", Err: err}
	}
	return bt, nil
}

// BusTypeListing pairs a bus type with the number of seats actually
// generated, so callers can spot a declared count drifting from the layout.
type BusTypeListing struct {
	models.BusType
	SeatCountActual int `json:"seatCountActual"`
}

func (r BusTypeRepository) List(ctx context.Context) ([]BusTypeListing, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT bt.id, bt.name, bt.seat_count, bt.grid_rows, bt.left_seats, bt.right_seats, bt.last_row_seats,
		       COUNT(s.id)
		FROM bus_types bt
		LEFT JOIN seats s ON s.bus_type_id = bt.id
		GROUP BY bt.id
		ORDER BY bt.id ASC`)
	if err != nil {
		return nil, domain.StorageError{Op: "list bus types", Err: err}
	}
	defer rows.Close()

	out := []BusTypeListing{}
	for rows.Next() {
		var b BusTypeListing
		if err := rows.Scan(&b.ID, &b.Name, &b.SeatCount, &b.Rows, &b.LeftSeats, &b.RightSeats, &b.LastRowSeats, &b.SeatCountActual); err != nil {
			return out, domain.StorageError{Op: "scan bus type", Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return out, domain.StorageError{Op: "list bus types", Err: err}
	}
	return out, nil
}
