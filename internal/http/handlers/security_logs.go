package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adnanmouslli/trip-manager/internal/http/middleware"
	"github.com/adnanmouslli/trip-manager/internal/repositories"
	"github.com/adnanmouslli/trip-manager/internal/services"
)

type SecurityLogHandler struct {
	Security services.SecurityService
}

type securityLogRequest struct {
	TripID        int64  `json:"tripId"`
	ReservationID *int64 `json:"reservationId"`
	NationalID    string `json:"nationalId"`
	PersonName    string `json:"personName"`
	Notes         string `json:"notes"`
}

func (h SecurityLogHandler) Create(c *gin.Context) {
	var req securityLogRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	log, err := h.Security.Record(c.Request.Context(), services.SecurityLogInput{
		TripID:        req.TripID,
		ReservationID: req.ReservationID,
		NationalID:    req.NationalID,
		PersonName:    req.PersonName,
		Notes:         req.Notes,
		RecordedBy:    middleware.GetUserID(c),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h SecurityLogHandler) List(c *gin.Context) {
	f := repositories.SecurityLogFilter{
		NationalID: c.Query("nationalId"),
	}
	if v, err := strconv.ParseInt(c.Query("tripId"), 10, 64); err == nil {
		f.TripID = v
	}
	if v, err := strconv.ParseInt(c.Query("reservationId"), 10, 64); err == nil {
		f.ReservationID = v
	}
	if v, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		f.From = v
	}
	if v, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		f.To = v
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		f.Page = v
	}
	if v, err := strconv.Atoi(c.Query("pageSize")); err == nil {
		f.PageSize = v
	}

	logs, total, err := h.Security.List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "total": total})
}

type securityLogUpdateRequest struct {
	NationalID *string `json:"nationalId"`
	PersonName *string `json:"personName"`
	Notes      *string `json:"notes"`
}

func (h SecurityLogHandler) Update(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req securityLogUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	log, err := h.Security.Update(c.Request.Context(), id, req.NationalID, req.PersonName, req.Notes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h SecurityLogHandler) Delete(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := h.Security.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
