package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/adnanmouslli/trip-manager/internal/domain"
	"github.com/adnanmouslli/trip-manager/internal/domain/models"
	"github.com/adnanmouslli/trip-manager/internal/repositories"
)

// AuthService issues HS256 tokens for staff accounts.
type AuthService struct {
	Users     repositories.UserRepository
	JWTSecret string
	TokenTTL  time.Duration
}

const bcryptCost = 12

func (s AuthService) Signup(ctx context.Context, name, phone, role, password string) (models.User, error) {
	var zero models.User
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	role = strings.ToLower(strings.TrimSpace(role))
	if name == "" {
		return zero, domain.ValidationError{Field: "name", Msg: "required"}
	}
	if phone == "" {
		return zero, domain.ValidationError{Field: "phone", Msg: "required"}
	}
	if !domain.ValidRole(role) {
		return zero, domain.ValidationError{Field: "role", Msg: "must be one of admin, booking, ops, security"}
	}
	if len(password) < 6 {
		return zero, domain.ValidationError{Field: "password", Msg: "must be at least 6 characters"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return zero, domain.StorageError{Op: "hash password", Err: err}
	}
	user := models.User{Name: name, Phone: phone, Role: role, PasswordHash: string(hash)}
	if err := s.Users.Create(ctx, &user); err != nil {
		return zero, err
	}
	return user, nil
}

// Login verifies credentials and returns a signed token. Unknown user and
// wrong password are indistinguishable to the caller.
func (s AuthService) Login(ctx context.Context, name, password string) (string, models.User, error) {
	user, err := s.Users.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if domain.IsNotFound(err) {
			return "", models.User{}, domain.ValidationError{Field: "credentials", Msg: "invalid name or password"}
		}
		return "", models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", models.User{}, domain.ValidationError{Field: "credentials", Msg: "invalid name or password"}
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.JWTSecret))
	if err != nil {
		return "", models.User{}, domain.StorageError{Op: "sign token", Err: err}
	}
	return token, user, nil
}
