package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/adnanmouslli/trip-manager/internal/domain"
)

func TestDeleteTripBlockedByReferences(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations WHERE trip_id").WithArgs(int64(9), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"refs"}).AddRow(2))
	mock.ExpectRollback()

	repo := TripRepository{DB: db}
	err = repo.Delete(context.Background(), 9)
	if !domain.IsConflict(err) {
		t.Fatalf("got %v, want conflict", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// Setting a trip's status to its current value changes 0 rows; that is not
// a missing trip.
func TestUpdateTripNoopSucceeds(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE trips SET").WithArgs("boarding", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM trips").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	repo := TripRepository{DB: db}
	status := domain.TripBoarding
	if err := repo.Update(context.Background(), 9, TripUpdate{Status: &status}); err != nil {
		t.Fatalf("noop update failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateTripMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE trips SET").WithArgs("boarding", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM trips").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	repo := TripRepository{DB: db}
	status := domain.TripBoarding
	err = repo.Update(context.Background(), 99, TripUpdate{Status: &status})
	if !domain.IsNotFound(err) {
		t.Fatalf("got %v, want not found", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteTripWithoutReferences(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations WHERE trip_id").WithArgs(int64(9), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"refs"}).AddRow(0))
	mock.ExpectExec("DELETE FROM trips").WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := TripRepository{DB: db}
	if err := repo.Delete(context.Background(), 9); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
