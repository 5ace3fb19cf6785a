package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/adnanmouslli/trip-manager/internal/domain"
)

// Re-submitting identical corrections changes 0 rows; that is not a missing
// log entry.
func TestUpdateSecurityLogNoopSucceeds(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE security_logs SET").WithArgs("123456", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM security_logs").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	repo := SecurityLogRepository{DB: db}
	nationalID := "123456"
	if err := repo.Update(context.Background(), 7, &nationalID, nil, nil); err != nil {
		t.Fatalf("noop update failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateSecurityLogMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE security_logs SET").WithArgs("123456", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM security_logs").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	repo := SecurityLogRepository{DB: db}
	nationalID := "123456"
	err = repo.Update(context.Background(), 99, &nationalID, nil, nil)
	if !domain.IsNotFound(err) {
		t.Fatalf("got %v, want not found", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
