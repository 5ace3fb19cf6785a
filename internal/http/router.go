package api

import (
	"database/sql"
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "github.com/adnanmouslli/trip-manager/internal/config"
	h "github.com/adnanmouslli/trip-manager/internal/http/handlers"
	"github.com/adnanmouslli/trip-manager/internal/http/middleware"
	"github.com/adnanmouslli/trip-manager/internal/repositories"
	"github.com/adnanmouslli/trip-manager/internal/services"
)

// NewRouter wires repositories, services and handlers around one DB handle.
func NewRouter(env intconfig.Env, db *sql.DB) *gin.Engine {
	busTypes := repositories.BusTypeRepository{DB: db}
	seats := repositories.SeatRepository{DB: db}
	trips := repositories.TripRepository{DB: db}
	tripSeats := repositories.TripSeatRepository{DB: db}
	reservations := repositories.ReservationRepository{DB: db}
	securityLogs := repositories.SecurityLogRepository{DB: db}
	users := repositories.UserRepository{DB: db}

	catalogSvc := services.CatalogService{BusTypes: busTypes, Seats: seats}
	tripSvc := services.TripService{Trips: trips, BusTypes: busTypes, Reservations: reservations}
	reservationSvc := services.ReservationService{
		DB: db, Trips: trips, Seats: seats, TripSeats: tripSeats, Reservations: reservations,
	}
	seatMapSvc := services.SeatMapService{
		Trips: trips, BusTypes: busTypes, Seats: seats, TripSeats: tripSeats, Reservations: reservations,
	}
	docsSvc := services.DocsService{Trips: trips, BusTypes: busTypes, Seats: seats, Reservations: reservations}
	authSvc := services.AuthService{Users: users, JWTSecret: env.JWTSecret}
	securitySvc := services.SecurityService{Trips: trips, Reservations: reservations, Logs: securityLogs}

	system := h.SystemHandler{DB: db}
	auth := h.AuthHandler{Auth: authSvc}
	busTypeH := h.BusTypeHandler{Catalog: catalogSvc}
	tripH := h.TripHandler{Trips: tripSvc, Reservations: reservationSvc}
	seatMapH := h.SeatMapHandler{SeatMaps: seatMapSvc}
	reservationH := h.ReservationHandler{Reservations: reservationSvc}
	securityH := h.SecurityLogHandler{Security: securitySvc}
	docsH := h.DocsHandler{Docs: docsSvc}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", system.Health)
		api.GET("/db-check", system.DBCheck)

		authGroup := api.Group("/auth")
		authGroup.POST("/signup", auth.Signup)
		authGroup.POST("/login", auth.Login)

		// ticket link is printed on receipts; reachable without a token
		api.GET("/reservations/:id/ticket.pdf", docsH.TicketPDF)

		authed := api.Group("")
		authed.Use(middleware.Auth(env.JWTSecret))

		admin := authed.Group("/admin", middleware.RequireRoles("admin"))
		{
			admin.POST("/bus-types", busTypeH.Create)
			admin.GET("/bus-types", busTypeH.List)
			admin.POST("/bus-types/:id/layout", busTypeH.GenerateLayout)
			admin.GET("/bus-types/:id/seats", busTypeH.ListSeats)
			admin.PUT("/seats/:seatId/status", busTypeH.SetSeatStatus)

			admin.POST("/trips", tripH.Create)
			admin.PUT("/trips/:id", tripH.Update)
			admin.DELETE("/trips/:id", tripH.Delete)
		}

		booking := authed.Group("/booking", middleware.RequireRoles("booking", "admin"))
		{
			booking.GET("/trips", tripH.List)
			booking.GET("/trips/:id", tripH.Get)
			booking.GET("/trips/:id/seat-map", seatMapH.Get)
			booking.GET("/trips/:id/seats/available", seatMapH.AvailableSeats)
			booking.GET("/trips/:id/seats/:seatId/reservable", reservationH.SeatReservable)
			booking.PUT("/trips/:id/seats/:seatId/override", seatMapH.SetOverride)

			booking.POST("/reservations", reservationH.Create)
			booking.GET("/reservations/:id", reservationH.Get)
			booking.PUT("/reservations/:id", reservationH.Update)
			booking.DELETE("/reservations/:id", reservationH.Delete)
			booking.GET("/trips/:id/reservations", tripH.Passengers)
		}

		ops := authed.Group("/ops", middleware.RequireRoles("ops", "admin"))
		{
			ops.GET("/trips", tripH.List)
			ops.GET("/reservations", reservationH.ListAll)
			ops.GET("/trips/:id/passengers", tripH.Passengers)
			ops.GET("/trips/:id/payments-summary", tripH.PaymentsSummary)
			ops.GET("/trips/:id/report.pdf", docsH.TripReportPDF)
		}

		security := authed.Group("/security", middleware.RequireRoles("security", "admin"))
		{
			security.POST("/logs", securityH.Create)
			security.GET("/logs", securityH.List)
			security.PUT("/logs/:id", securityH.Update)
			security.DELETE("/logs/:id", securityH.Delete)
		}
	}

	return r
}
