package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adnanmouslli/trip-manager/internal/domain"
	"github.com/adnanmouslli/trip-manager/internal/http/middleware"
	"github.com/adnanmouslli/trip-manager/internal/repositories"
	"github.com/adnanmouslli/trip-manager/internal/services"
)

type TripHandler struct {
	Trips        services.TripService
	Reservations services.ReservationService
}

type tripRequest struct {
	BusTypeID        int64     `json:"busTypeId"`
	OriginLabel      string    `json:"originLabel"`
	DestinationLabel string    `json:"destinationLabel"`
	DriverName       string    `json:"driverName"`
	DepartureAt      time.Time `json:"departureAt"`
	DurationMinutes  *int      `json:"durationMinutes"`
}

func (h TripHandler) Create(c *gin.Context) {
	var req tripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trip, err := h.Trips.Create(c.Request.Context(), services.TripInput{
		BusTypeID:        req.BusTypeID,
		OriginLabel:      req.OriginLabel,
		DestinationLabel: req.DestinationLabel,
		DriverName:       req.DriverName,
		DepartureAt:      req.DepartureAt,
		DurationMinutes:  req.DurationMinutes,
		CreatedBy:        middleware.GetUserID(c),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

func (h TripHandler) List(c *gin.Context) {
	out, err := h.Trips.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": out})
}

func (h TripHandler) Get(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	trip, err := h.Trips.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

type tripUpdateRequest struct {
	BusTypeID        *int64     `json:"busTypeId"`
	OriginLabel      *string    `json:"originLabel"`
	DestinationLabel *string    `json:"destinationLabel"`
	DriverName       *string    `json:"driverName"`
	DepartureAt      *time.Time `json:"departureAt"`
	DurationMinutes  *int       `json:"durationMinutes"`
	ClearDuration    bool       `json:"clearDuration"`
	Status           *string    `json:"status"`
}

func (h TripHandler) Update(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req tripUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	upd := repositories.TripUpdate{
		BusTypeID:        req.BusTypeID,
		OriginLabel:      req.OriginLabel,
		DestinationLabel: req.DestinationLabel,
		DriverName:       req.DriverName,
		DepartureAt:      req.DepartureAt,
	}
	if req.ClearDuration {
		var none *int
		upd.DurationMinutes = &none
	} else if req.DurationMinutes != nil {
		upd.DurationMinutes = &req.DurationMinutes
	}
	if req.Status != nil {
		s := domain.TripStatus(*req.Status)
		upd.Status = &s
	}
	trip, err := h.Trips.Update(c.Request.Context(), id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h TripHandler) Delete(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := h.Trips.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h TripHandler) Passengers(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	out, err := h.Reservations.ListForTrip(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tripId": id, "reservations": out})
}

func (h TripHandler) PaymentsSummary(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	summary, err := h.Reservations.PaymentsSummary(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
