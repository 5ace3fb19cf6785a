package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adnanmouslli/trip-manager/internal/services"
)

type BusTypeHandler struct {
	Catalog services.CatalogService
}

type createBusTypeRequest struct {
	Name      string `json:"name"`
	SeatCount int    `json:"seatCount"`
}

func (h BusTypeHandler) Create(c *gin.Context) {
	var req createBusTypeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	busType, err := h.Catalog.CreateBusType(c.Request.Context(), req.Name, req.SeatCount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, busType)
}

func (h BusTypeHandler) List(c *gin.Context) {
	out, err := h.Catalog.ListBusTypes(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"busTypes": out})
}

type generateLayoutRequest struct {
	Rows         int `json:"rows"`
	LeftSeats    int `json:"leftSeats"`
	RightSeats   int `json:"rightSeats"`
	LastRowSeats int `json:"lastRowSeats"`
}

func (h BusTypeHandler) GenerateLayout(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req generateLayoutRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	count, err := h.Catalog.GenerateLayout(c.Request.Context(), id, req.Rows, req.LeftSeats, req.RightSeats, req.LastRowSeats)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"busTypeId": id, "seatCount": count})
}

func (h BusTypeHandler) ListSeats(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	seats, err := h.Catalog.ListSeats(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"busTypeId": id, "seats": seats})
}

type seatStatusRequest struct {
	Status string `json:"status"`
}

func (h BusTypeHandler) SetSeatStatus(c *gin.Context) {
	seatID, ok := PathID(c, "seatId")
	if !ok {
		return
	}
	var req seatStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	seat, err := h.Catalog.SetDefaultSeatStatus(c.Request.Context(), seatID, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, seat)
}
