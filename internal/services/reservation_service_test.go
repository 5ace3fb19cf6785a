package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/adnanmouslli/trip-manager/internal/domain"
	"github.com/adnanmouslli/trip-manager/internal/repositories"
)

func newReservationService(t *testing.T) (ReservationService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := ReservationService{
		DB:           db,
		Trips:        repositories.TripRepository{DB: db},
		Seats:        repositories.SeatRepository{DB: db},
		TripSeats:    repositories.TripSeatRepository{DB: db},
		Reservations: repositories.ReservationRepository{DB: db},
	}
	return svc, mock
}

func tripRow(id, busTypeID int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "bus_type_id", "origin_label", "destination_label", "driver_name",
		"departure_at", "duration_minutes", "status", "created_by",
	}).AddRow(id, busTypeID, "Damascus", "Aleppo", "Sami", time.Now(), 240, "scheduled", 1)
}

func seatRow(id, busTypeID int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "bus_type_id", "seat_row", "seat_col", "number", "status"}).
		AddRow(id, busTypeID, 1, 1, 1, status)
}

func reservationRow(id, tripID int64, seatID any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "trip_id", "seat_id", "passenger_name", "phone", "boarding_point",
		"amount", "paid", "notes", "created_by", "created_at",
	}).AddRow(id, tripID, seatID, "Huda", "0930000000", "Garage", 50000, true, "", 1, time.Now())
}

func TestReserveSeatSuccess(t *testing.T) {
	svc, mock := newReservationService(t)
	seatID := int64(5)

	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(9)).WillReturnRows(tripRow(9, 1))
	mock.ExpectBegin()
	mock.ExpectQuery("FROM seats WHERE id").WithArgs(seatID).WillReturnRows(seatRow(seatID, 1, "available"))
	mock.ExpectQuery("FROM trip_seats WHERE trip_id").WithArgs(int64(9), seatID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectExec("INSERT INTO reservations").WillReturnResult(sqlmock.NewResult(33, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM reservations WHERE id").WithArgs(int64(33)).
		WillReturnRows(reservationRow(33, 9, seatID))

	res, err := svc.Reserve(context.Background(), ReserveInput{
		TripID: 9, SeatID: &seatID, PassengerName: "Huda", Amount: 50000, CreatedBy: 1,
	})
	if err != nil {
		t.Fatalf("reserve error: %v", err)
	}
	if res.ID != 33 {
		t.Fatalf("got reservation id %d, want 33", res.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// A duplicate-key failure on insert is the conflict signal; two racing
// requests for the same seat must not both succeed.
func TestReserveSeatTakenOnDuplicate(t *testing.T) {
	svc, mock := newReservationService(t)
	seatID := int64(5)

	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(9)).WillReturnRows(tripRow(9, 1))
	mock.ExpectBegin()
	mock.ExpectQuery("FROM seats WHERE id").WithArgs(seatID).WillReturnRows(seatRow(seatID, 1, "available"))
	mock.ExpectQuery("FROM trip_seats WHERE trip_id").WithArgs(int64(9), seatID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectExec("INSERT INTO reservations").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	_, err := svc.Reserve(context.Background(), ReserveInput{
		TripID: 9, SeatID: &seatID, PassengerName: "Huda", Amount: 50000,
	})
	if !domain.IsSeatTaken(err) {
		t.Fatalf("got %v, want seat taken", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveRejectsForeignBusTypeSeat(t *testing.T) {
	svc, mock := newReservationService(t)
	seatID := int64(5)

	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(9)).WillReturnRows(tripRow(9, 1))
	mock.ExpectBegin()
	mock.ExpectQuery("FROM seats WHERE id").WithArgs(seatID).WillReturnRows(seatRow(seatID, 2, "available"))
	mock.ExpectRollback()

	_, err := svc.Reserve(context.Background(), ReserveInput{
		TripID: 9, SeatID: &seatID, PassengerName: "Huda",
	})
	if !domain.IsBusTypeMismatch(err) {
		t.Fatalf("got %v, want bus type mismatch", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// A per-trip blocked override must refuse the seat even though the catalog
// default says available.
func TestReserveRespectsBlockedOverride(t *testing.T) {
	svc, mock := newReservationService(t)
	seatID := int64(5)

	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(9)).WillReturnRows(tripRow(9, 1))
	mock.ExpectBegin()
	mock.ExpectQuery("FROM seats WHERE id").WithArgs(seatID).WillReturnRows(seatRow(seatID, 1, "available"))
	mock.ExpectQuery("FROM trip_seats WHERE trip_id").WithArgs(int64(9), seatID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("blocked"))
	mock.ExpectRollback()

	_, err := svc.Reserve(context.Background(), ReserveInput{
		TripID: 9, SeatID: &seatID, PassengerName: "Huda",
	})
	if !domain.IsSeatTaken(err) {
		t.Fatalf("got %v, want seat taken", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveUnseatedSkipsSeatChecks(t *testing.T) {
	svc, mock := newReservationService(t)

	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(9)).WillReturnRows(tripRow(9, 1))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO reservations").WillReturnResult(sqlmock.NewResult(40, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM reservations WHERE id").WithArgs(int64(40)).
		WillReturnRows(reservationRow(40, 9, nil))

	res, err := svc.Reserve(context.Background(), ReserveInput{
		TripID: 9, PassengerName: "Huda", Amount: 50000,
	})
	if err != nil {
		t.Fatalf("reserve error: %v", err)
	}
	if res.SeatID != nil {
		t.Fatalf("unseated reservation came back with a seat")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveValidatesInput(t *testing.T) {
	svc, _ := newReservationService(t)

	if _, err := svc.Reserve(context.Background(), ReserveInput{TripID: 9}); !domain.IsValidation(err) {
		t.Fatalf("missing name: got %v, want validation error", err)
	}
	if _, err := svc.Reserve(context.Background(), ReserveInput{
		TripID: 9, PassengerName: "Huda", Amount: -1,
	}); !domain.IsValidation(err) {
		t.Fatalf("negative amount: got %v, want validation error", err)
	}
}

// Editing passenger details must never fail on seat state; the seat checks
// run only when the seat actually changes.
func TestUpdateNonSeatFieldsSkipsSeatChecks(t *testing.T) {
	svc, mock := newReservationService(t)
	seatID := int64(5)

	mock.ExpectQuery("FROM reservations WHERE id").WithArgs(int64(33)).
		WillReturnRows(reservationRow(33, 9, seatID))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE reservations SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("FROM reservations WHERE id").WithArgs(int64(33)).
		WillReturnRows(reservationRow(33, 9, seatID))

	name := "Huda Updated"
	_, err := svc.Update(context.Background(), 33, repositories.ReservationUpdate{PassengerName: &name})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// Moving to another seat repeats the reserve check against the target.
func TestUpdateSeatMoveChecksTargetSeat(t *testing.T) {
	svc, mock := newReservationService(t)
	oldSeat := int64(5)
	newSeat := int64(6)

	mock.ExpectQuery("FROM reservations WHERE id").WithArgs(int64(33)).
		WillReturnRows(reservationRow(33, 9, oldSeat))
	mock.ExpectQuery("FROM trips WHERE id").WithArgs(int64(9)).WillReturnRows(tripRow(9, 1))
	mock.ExpectBegin()
	mock.ExpectQuery("FROM seats WHERE id").WithArgs(newSeat).WillReturnRows(seatRow(newSeat, 1, "available"))
	mock.ExpectQuery("FROM trip_seats WHERE trip_id").WithArgs(int64(9), newSeat).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectExec("UPDATE reservations SET").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	target := &newSeat
	_, err := svc.Update(context.Background(), 33, repositories.ReservationUpdate{SeatID: &target})
	if !domain.IsSeatTaken(err) {
		t.Fatalf("got %v, want seat taken", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
