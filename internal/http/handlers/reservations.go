package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adnanmouslli/trip-manager/internal/http/middleware"
	"github.com/adnanmouslli/trip-manager/internal/repositories"
	"github.com/adnanmouslli/trip-manager/internal/services"
)

type ReservationHandler struct {
	Reservations services.ReservationService
}

type reserveRequest struct {
	TripID        int64  `json:"tripId"`
	SeatID        *int64 `json:"seatId"`
	PassengerName string `json:"passengerName"`
	Phone         string `json:"phone"`
	BoardingPoint string `json:"boardingPoint"`
	Amount        int64  `json:"amount"`
	Notes         string `json:"notes"`
}

func (h ReservationHandler) Create(c *gin.Context) {
	var req reserveRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.Reservations.Reserve(c.Request.Context(), services.ReserveInput{
		TripID:        req.TripID,
		SeatID:        req.SeatID,
		PassengerName: req.PassengerName,
		Phone:         req.Phone,
		BoardingPoint: req.BoardingPoint,
		Amount:        req.Amount,
		Notes:         req.Notes,
		CreatedBy:     middleware.GetUserID(c),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h ReservationHandler) Get(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	res, err := h.Reservations.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type reservationUpdateRequest struct {
	SeatID        *int64  `json:"seatId"`
	RemoveSeat    bool    `json:"removeSeat"`
	PassengerName *string `json:"passengerName"`
	Phone         *string `json:"phone"`
	BoardingPoint *string `json:"boardingPoint"`
	Amount        *int64  `json:"amount"`
	Paid          *bool   `json:"paid"`
	Notes         *string `json:"notes"`
}

func (h ReservationHandler) Update(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req reservationUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	upd := repositories.ReservationUpdate{
		PassengerName: req.PassengerName,
		Phone:         req.Phone,
		BoardingPoint: req.BoardingPoint,
		Amount:        req.Amount,
		Paid:          req.Paid,
		Notes:         req.Notes,
	}
	if req.RemoveSeat {
		var none *int64
		upd.SeatID = &none
	} else if req.SeatID != nil {
		upd.SeatID = &req.SeatID
	}
	res, err := h.Reservations.Update(c.Request.Context(), id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h ReservationHandler) ListAll(c *gin.Context) {
	out, err := h.Reservations.ListAll(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": out})
}

func (h ReservationHandler) SeatReservable(c *gin.Context) {
	tripID, ok := PathID(c, "id")
	if !ok {
		return
	}
	seatID, ok := PathID(c, "seatId")
	if !ok {
		return
	}
	reservable, err := h.Reservations.IsSeatReservable(c.Request.Context(), tripID, seatID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tripId": tripID, "seatId": seatID, "reservable": reservable})
}

func (h ReservationHandler) Delete(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := h.Reservations.Release(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"released": id})
}
