package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adnanmouslli/trip-manager/internal/domain"
	"github.com/adnanmouslli/trip-manager/internal/http/middleware"
)

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Seat conflicts and
// destructive refusals are 409 so clients know to re-fetch, not retry.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsBusTypeMismatch(err):
		respondError(c, http.StatusBadRequest, "bus_type_mismatch", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsSeatTaken(err):
		respondError(c, http.StatusConflict, "seat_taken", err.Error())
	case domain.IsDestructiveConflict(err):
		respondError(c, http.StatusConflict, "destructive_conflict", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
