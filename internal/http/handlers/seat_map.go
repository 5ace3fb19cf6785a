package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adnanmouslli/trip-manager/internal/services"
)

type SeatMapHandler struct {
	SeatMaps services.SeatMapService
}

func (h SeatMapHandler) Get(c *gin.Context) {
	tripID, ok := PathID(c, "id")
	if !ok {
		return
	}
	sm, err := h.SeatMaps.Build(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sm)
}

func (h SeatMapHandler) AvailableSeats(c *gin.Context) {
	tripID, ok := PathID(c, "id")
	if !ok {
		return
	}
	ids, err := h.SeatMaps.ListAvailableSeatIDs(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tripId": tripID, "availableSeatIds": ids})
}

type seatOverrideRequest struct {
	Status string `json:"status"`
}

func (h SeatMapHandler) SetOverride(c *gin.Context) {
	tripID, ok := PathID(c, "id")
	if !ok {
		return
	}
	seatID, ok := PathID(c, "seatId")
	if !ok {
		return
	}
	var req seatOverrideRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.SeatMaps.SetOverride(c.Request.Context(), tripID, seatID, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tripId": tripID, "seatId": seatID, "status": req.Status})
}
