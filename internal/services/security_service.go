package services

import (
	"context"
	"strings"

	"github.com/adnanmouslli/trip-manager/internal/domain"
	"github.com/adnanmouslli/trip-manager/internal/domain/models"
	"github.com/adnanmouslli/trip-manager/internal/repositories"
)

// SecurityService records identity checks performed at boarding.
type SecurityService struct {
	Trips        repositories.TripRepository
	Reservations repositories.ReservationRepository
	Logs         repositories.SecurityLogRepository
}

type SecurityLogInput struct {
	TripID        int64
	ReservationID *int64
	NationalID    string
	PersonName    string
	Notes         string
	RecordedBy    int64
}

func (s SecurityService) Record(ctx context.Context, in SecurityLogInput) (models.SecurityLog, error) {
	var zero models.SecurityLog
	if strings.TrimSpace(in.NationalID) == "" {
		return zero, domain.ValidationError{Field: "nationalId", Msg: "required"}
	}
	if strings.TrimSpace(in.PersonName) == "" {
		return zero, domain.ValidationError{Field: "personName", Msg: "required"}
	}
	if _, err := s.Trips.GetByID(ctx, in.TripID); err != nil {
		return zero, err
	}
	if in.ReservationID != nil {
		res, err := s.Reservations.GetByID(ctx, *in.ReservationID)
		if err != nil {
			return zero, err
		}
		if res.TripID != in.TripID {
			return zero, domain.ValidationError{Field: "reservationId", Msg: "belongs to a different trip"}
		}
	}
	log := models.SecurityLog{
		TripID:        in.TripID,
		ReservationID: in.ReservationID,
		NationalID:    strings.TrimSpace(in.NationalID),
		PersonName:    strings.TrimSpace(in.PersonName),
		Notes:         in.Notes,
		RecordedBy:    in.RecordedBy,
	}
	if err := s.Logs.Create(ctx, &log); err != nil {
		return zero, err
	}
	return s.Logs.GetByID(ctx, log.ID)
}

func (s SecurityService) List(ctx context.Context, f repositories.SecurityLogFilter) ([]models.SecurityLog, int, error) {
	return s.Logs.List(ctx, f)
}

func (s SecurityService) Update(ctx context.Context, id int64, nationalID, personName, notes *string) (models.SecurityLog, error) {
	if nationalID != nil && strings.TrimSpace(*nationalID) == "" {
		return models.SecurityLog{}, domain.ValidationError{Field: "nationalId", Msg: "must not be empty"}
	}
	if personName != nil && strings.TrimSpace(*personName) == "" {
		return models.SecurityLog{}, domain.ValidationError{Field: "personName", Msg: "must not be empty"}
	}
	if err := s.Logs.Update(ctx, id, nationalID, personName, notes); err != nil {
		return models.SecurityLog{}, err
	}
	return s.Logs.GetByID(ctx, id)
}

func (s SecurityService) Delete(ctx context.Context, id int64) error {
	return s.Logs.Delete(ctx, id)
}
