package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/adnanmouslli/trip-manager/internal/domain"
	"github.com/adnanmouslli/trip-manager/internal/repositories"
)

func TestSignupValidatesInput(t *testing.T) {
	svc := AuthService{}

	cases := []struct {
		name, phone, role, password string
	}{
		{"", "093", "admin", "secret1"},
		{"Huda", "", "admin", "secret1"},
		{"Huda", "093", "superuser", "secret1"},
		{"Huda", "093", "admin", "short"},
	}
	for _, tc := range cases {
		if _, err := svc.Signup(context.Background(), tc.name, tc.phone, tc.role, tc.password); !domain.IsValidation(err) {
			t.Fatalf("signup(%q,%q,%q): got %v, want validation error", tc.name, tc.phone, tc.role, err)
		}
	}
}

func TestLoginIssuesToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "name", "phone", "role", "password_hash"}).
			AddRow(1, "Huda", "0930000000", "booking", string(hash))
	}

	svc := AuthService{Users: repositories.UserRepository{DB: db}, JWTSecret: "test-secret"}

	mock.ExpectQuery("FROM users WHERE name").WithArgs("Huda").WillReturnRows(userRows())
	token, user, err := svc.Login(context.Background(), "Huda", "correct-horse")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if user.Role != "booking" {
		t.Fatalf("got role %q, want booking", user.Role)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["role"] != "booking" {
		t.Fatalf("token role claim %v, want booking", claims["role"])
	}

	// wrong password is indistinguishable from unknown user
	mock.ExpectQuery("FROM users WHERE name").WithArgs("Huda").WillReturnRows(userRows())
	if _, _, err := svc.Login(context.Background(), "Huda", "wrong"); !domain.IsValidation(err) {
		t.Fatalf("wrong password: got %v, want validation error", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
