package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/adnanmouslli/trip-manager/internal/domain"
	"github.com/adnanmouslli/trip-manager/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) Create(ctx context.Context, t *models.Trip) error {
	var duration any
	if t.DurationMinutes != nil {
		duration = *t.DurationMinutes
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO trips (bus_type_id, origin_label, destination_label, driver_name, departure_at, duration_minutes, status, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.BusTypeID, t.OriginLabel, t.DestinationLabel, t.DriverName,
		t.DepartureAt, duration, string(t.Status), t.CreatedBy)
	if err != nil {
		return domain.StorageError{Op: "create trip", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.StorageError{Op: "create trip", Err: err}
	}
	t.ID = id
	return nil
}

func scanTrip(row interface{ Scan(...any) error }) (models.Trip, error) {
	var t models.Trip
	var origin, dest, driver sql.NullString
	var duration sql.NullInt64
	var status string
	err := row.Scan(&t.ID, &t.BusTypeID, &origin, &dest, &driver, &t.DepartureAt, &duration, &status, &t.CreatedBy)
	if err != nil {
		return t, err
	}
	t.OriginLabel = origin.String
	t.DestinationLabel = dest.String
	t.DriverName = driver.String
	if duration.Valid {
		v := int(duration.Int64)
		t.DurationMinutes = &v
	}
	t.Status = domain.TripStatus(status)
	return t, nil
}

const tripCols = `id, bus_type_id, origin_label, destination_label, driver_name, departure_at, duration_minutes, status, created_by`

func (r TripRepository) GetByID(ctx context.Context, id int64) (models.Trip, error) {
	t, err := scanTrip(r.DB.QueryRowContext(ctx, `SELECT `+tripCols+` FROM trips WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return t, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return t, domain.StorageError{Op: "get trip", Err: err}
	}
	return t, nil
}

// TripListing adds the bus type name and current passenger count to a trip
// for the ops/booking listings.
type TripListing struct {
	models.Trip
	BusTypeName     string `json:"busTypeName"`
	PassengersCount int    `json:"passengersCount"`
}

func (r TripRepository) List(ctx context.Context) ([]TripListing, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT t.id, t.bus_type_id, t.origin_label, t.destination_label, t.driver_name,
		       t.departure_at, t.duration_minutes, t.status, t.created_by,
		       bt.name, COUNT(res.id)
		FROM trips t
		JOIN bus_types bt ON bt.id = t.bus_type_id
		LEFT JOIN reservations res ON res.trip_id = t.id
		GROUP BY t.id
		ORDER BY t.departure_at ASC`)
	if err != nil {
		return nil, domain.StorageError{Op: "list trips", Err: err}
	}
	defer rows.Close()

	out := []TripListing{}
	for rows.Next() {
		var l TripListing
		var origin, dest, driver sql.NullString
		var duration sql.NullInt64
		var status string
		if err := rows.Scan(&l.ID, &l.BusTypeID, &origin, &dest, &driver,
			&l.DepartureAt, &duration, &status, &l.CreatedBy,
			&l.BusTypeName, &l.PassengersCount); err != nil {
			return out, domain.StorageError{Op: "scan trip", Err: err}
		}
		l.OriginLabel = origin.String
		l.DestinationLabel = dest.String
		l.DriverName = driver.String
		if duration.Valid {
			v := int(duration.Int64)
			l.DurationMinutes = &v
		}
		l.Status = domain.TripStatus(status)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return out, domain.StorageError{Op: "list trips", Err: err}
	}
	return out, nil
}

// TripUpdate carries optional field changes; nil means leave as is.
type TripUpdate struct {
	BusTypeID        *int64
	OriginLabel      *string
	DestinationLabel *string
	DriverName       *string
	DepartureAt      *time.Time
	DurationMinutes  **int
	Status           *domain.TripStatus
}

func (r TripRepository) Update(ctx context.Context, id int64, upd TripUpdate) error {
	sets := []string{}
	args := []any{}
	if upd.BusTypeID != nil {
		sets = append(sets, "bus_type_id = ?")
		args = append(args, *upd.BusTypeID)
	}
	if upd.OriginLabel != nil {
		sets = append(sets, "origin_label = ?")
		args = append(args, *upd.OriginLabel)
	}
	if upd.DestinationLabel != nil {
		sets = append(sets, "destination_label = ?")
		args = append(args, *upd.DestinationLabel)
	}
	if upd.DriverName != nil {
		sets = append(sets, "driver_name = ?")
		args = append(args, *upd.DriverName)
	}
	if upd.DepartureAt != nil {
		sets = append(sets, "departure_at = ?")
		args = append(args, *upd.DepartureAt)
	}
	if upd.DurationMinutes != nil {
		sets = append(sets, "duration_minutes = ?")
		if *upd.DurationMinutes != nil {
			args = append(args, **upd.DurationMinutes)
		} else {
			args = append(args, nil)
		}
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*upd.Status))
	}
	if len(sets) == 0 {
		return nil
	}
	query := "UPDATE trips SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += " WHERE id = ?"
	args = append(args, id)

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.StorageError{Op: "update trip", Err: err}
	}
	// 0 changed rows is ambiguous: missing trip, or values already current.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var one int
		err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM trips WHERE id = ?`, id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "trip"}
		}
		if err != nil {
			return domain.StorageError{Op: "update trip", Err: err}
		}
	}
	return nil
}

// Delete removes a trip only while nothing references it. Reservations and
// security logs block deletion instead of dangling or cascading away.
func (r TripRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.StorageError{Op: "begin delete tx", Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var refs int64
	err = tx.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM reservations WHERE trip_id = ?)
		     + (SELECT COUNT(*) FROM security_logs WHERE trip_id = ?)`, id, id).Scan(&refs)
	if err != nil {
		return domain.StorageError{Op: "count trip references", Err: err}
	}
	if refs > 0 {
		return domain.ConflictError{Resource: "trip", Msg: "reservations or security logs still reference it"}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return domain.StorageError{Op: "delete trip", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}

	if err := tx.Commit(); err != nil {
		return domain.StorageError{Op: "commit delete tx", Err: err}
	}
	committed = true
	return nil
}
