package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/adnanmouslli/trip-manager/internal/domain"
	"github.com/adnanmouslli/trip-manager/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) Create(ctx context.Context, u *models.User) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (name, phone, role, password_hash) VALUES (?, ?, ?, ?)`,
		u.Name, u.Phone, u.Role, u.PasswordHash)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ConflictError{Resource: "user", Msg: "phone already registered", Err: err}
		}
		return domain.StorageError{Op: "create user", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.StorageError{Op: "create user", Err: err}
	}
	u.ID = id
	return nil
}

func (r UserRepository) GetByName(ctx context.Context, name string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, phone, role, password_hash FROM users WHERE name = ? LIMIT 1`, name).
		Scan(&u.ID, &u.Name, &u.Phone, &u.Role, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return u, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return u, domain.StorageError{Op: "get user", Err: err}
	}
	return u, nil
}
