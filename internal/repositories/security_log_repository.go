package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/adnanmouslli/trip-manager/internal/domain"
	"github.com/adnanmouslli/trip-manager/internal/domain/models"
)

type SecurityLogRepository struct {
	DB *sql.DB
}

const securityLogCols = `id, trip_id, reservation_id, national_id, person_name, notes, recorded_by, recorded_at`

func scanSecurityLog(row interface{ Scan(...any) error }) (models.SecurityLog, error) {
	var l models.SecurityLog
	var resID sql.NullInt64
	var notes sql.NullString
	err := row.Scan(&l.ID, &l.TripID, &resID, &l.NationalID, &l.PersonName, &notes, &l.RecordedBy, &l.RecordedAt)
	if err != nil {
		return l, err
	}
	if resID.Valid {
		v := resID.Int64
		l.ReservationID = &v
	}
	l.Notes = notes.String
	return l, nil
}

func (r SecurityLogRepository) Create(ctx context.Context, l *models.SecurityLog) error {
	var resID any
	if l.ReservationID != nil {
		resID = *l.ReservationID
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO security_logs (trip_id, reservation_id, national_id, person_name, notes, recorded_by)
		VALUES (?, ?, ?, ?, ?, ?)`,
		l.TripID, resID, l.NationalID, l.PersonName, l.Notes, l.RecordedBy)
	if err != nil {
		return domain.StorageError{Op: "create security log", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.StorageError{Op: "create security log", Err: err}
	}
	l.ID = id
	return nil
}

func (r SecurityLogRepository) GetByID(ctx context.Context, id int64) (models.SecurityLog, error) {
	l, err := scanSecurityLog(r.DB.QueryRowContext(ctx,
		`SELECT `+securityLogCols+` FROM security_logs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return l, domain.NotFoundError{Resource: "security log"}
	}
	if err != nil {
		return l, domain.StorageError{Op: "get security log", Err: err}
	}
	return l, nil
}

// SecurityLogFilter narrows the listing; zero values mean no constraint.
type SecurityLogFilter struct {
	TripID        int64
	ReservationID int64
	NationalID    string
	From          time.Time
	To            time.Time
	Page          int
	PageSize      int
}

// List returns logs newest first with the filtered total for pagination.
// PageSize is capped at 200.
func (r SecurityLogRepository) List(ctx context.Context, f SecurityLogFilter) ([]models.SecurityLog, int, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.TripID > 0 {
		where = append(where, "trip_id = ?")
		args = append(args, f.TripID)
	}
	if f.ReservationID > 0 {
		where = append(where, "reservation_id = ?")
		args = append(args, f.ReservationID)
	}
	if strings.TrimSpace(f.NationalID) != "" {
		where = append(where, "national_id LIKE ?")
		args = append(args, "%"+strings.TrimSpace(f.NationalID)+"%")
	}
	if !f.From.IsZero() {
		where = append(where, "recorded_at >= ?")
		args = append(args, f.From)
	}
	if !f.To.IsZero() {
		where = append(where, "recorded_at <= ?")
		args = append(args, f.To)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM security_logs WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, domain.StorageError{Op: "count security logs", Err: err}
	}

	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	if pageSize > 200 {
		pageSize = 200
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+securityLogCols+` FROM security_logs WHERE `+cond+` ORDER BY recorded_at DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, domain.StorageError{Op: "list security logs", Err: err}
	}
	defer rows.Close()

	out := []models.SecurityLog{}
	for rows.Next() {
		l, err := scanSecurityLog(rows)
		if err != nil {
			return out, total, domain.StorageError{Op: "scan security log", Err: err}
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return out, total, domain.StorageError{Op: "list security logs", Err: err}
	}
	return out, total, nil
}

func (r SecurityLogRepository) Update(ctx context.Context, id int64, nationalID, personName, notes *string) error {
	sets := []string{}
	args := []any{}
	if nationalID != nil {
		sets = append(sets, "national_id = ?")
		args = append(args, *nationalID)
	}
	if personName != nil {
		sets = append(sets, "person_name = ?")
		args = append(args, *personName)
	}
	if notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *notes)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		`UPDATE security_logs SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return domain.StorageError{Op: "update security log", Err: err}
	}
	// 0 changed rows is ambiguous: missing log, or values already current.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var one int
		err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM security_logs WHERE id = ?`, id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "security log"}
		}
		if err != nil {
			return domain.StorageError{Op: "update security log", Err: err}
		}
	}
	return nil
}

func (r SecurityLogRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM security_logs WHERE id = ?`, id)
	if err != nil {
		return domain.StorageError{Op: "delete security log", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "security log"}
	}
	return nil
}
