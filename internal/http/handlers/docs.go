package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adnanmouslli/trip-manager/internal/http/middleware"
	"github.com/adnanmouslli/trip-manager/internal/services"
)

type DocsHandler struct {
	Docs services.DocsService
}

// TicketPDF returns the passenger ticket inline. Served without auth so the
// link on a printed receipt keeps working.
func (h DocsHandler) TicketPDF(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	svc := h.Docs
	svc.RequestID = middleware.GetRequestID(c)
	pdfBytes, filename, err := svc.GenerateTicket(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// TripReportPDF returns the per-trip passenger manifest inline.
func (h DocsHandler) TripReportPDF(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	svc := h.Docs
	svc.RequestID = middleware.GetRequestID(c)
	pdfBytes, filename, err := svc.GenerateTripReport(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
