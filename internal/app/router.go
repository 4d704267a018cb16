// Package app assembles the HTTP surface of the reservation engine.
package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"hotelops/internal/domain"
	"hotelops/internal/middleware"
	"hotelops/internal/modules/availability"
	"hotelops/internal/modules/housekeeping"
	"hotelops/internal/modules/invoice"
	"hotelops/internal/modules/reservation"
	"hotelops/internal/modules/room"
	"hotelops/internal/modules/roomstatus"
	"hotelops/internal/pkg/jwt"
	"hotelops/internal/pkg/lock"
	"hotelops/internal/pkg/logger"
	"hotelops/internal/repository"
)

type Deps struct {
	DB     *gorm.DB
	JWT    *jwt.Service
	Locker lock.Locker
	Policy domain.OverlapPolicy

	HousekeepingTokenHash string
	CORSAllowedOrigins    []string

	Log zerolog.Logger
}

type App struct {
	Router *gin.Engine
	Hub    *roomstatus.Hub

	Availability *availability.Service
	Reservations *reservation.Service
	Invoices     *invoice.Service
	Housekeeping *housekeeping.Service
}

func New(d Deps) *App {
	roomRepo := repository.NewRoomRepository(d.DB)
	reservationRepo := repository.NewReservationRepository(d.DB)
	invoiceRepo := repository.NewInvoiceRepository(d.DB)
	taskRepo := repository.NewTaskRepository(d.DB)
	tx := repository.NewTxManager(d.DB)

	hub := roomstatus.NewHub(logger.Component(d.Log, "room_feed"))
	sync := roomstatus.NewSynchronizer(roomRepo, hub, logger.Component(d.Log, "room_status"))

	availabilityService := availability.NewService(roomRepo, reservationRepo, d.Policy)
	housekeepingService := housekeeping.NewService(taskRepo, roomRepo, tx, d.Locker, sync, logger.Component(d.Log, "housekeeping"))
	reservationService := reservation.NewService(
		reservationRepo,
		roomRepo,
		availabilityService,
		tx,
		d.Locker,
		sync,
		housekeepingService,
		logger.Component(d.Log, "reservation"),
	)
	invoiceService := invoice.NewService(invoiceRepo, reservationRepo, tx, d.Locker, logger.Component(d.Log, "invoice"))

	availabilityHandler := availability.NewHandler(availabilityService)
	roomHandler := room.NewHandler(roomRepo)
	reservationHandler := reservation.NewHandler(reservationService)
	invoiceHandler := invoice.NewHandler(invoiceService)
	housekeepingHandler := housekeeping.NewHandler(housekeepingService)
	origins := middleware.NewOriginPolicy(d.CORSAllowedOrigins)
	wsHandler := roomstatus.NewWSHandler(hub, d.JWT, origins.AllowedOrNone, logger.Component(d.Log, "room_feed"))

	r := gin.New()
	r.Use(middleware.RequestLogger(logger.Component(d.Log, "http")))
	r.Use(middleware.CORS(origins))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "feed_clients": hub.ConnectedCount()})
	})

	wsHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		// public
		availabilityHandler.RegisterRoutes(v1)
		roomHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(d.JWT))
		{
			booking := protected.Group("/")
			booking.Use(middleware.RequireRole(middleware.RoleAdmin, middleware.RoleManager, middleware.RoleReceptionist, middleware.RoleGuest))
			reservationHandler.RegisterRoutes(booking)

			desk := protected.Group("/")
			desk.Use(middleware.RequireRole(middleware.FrontDesk...))
			reservationHandler.RegisterDeskRoutes(desk)
			invoiceHandler.RegisterRoutes(desk)

			staff := protected.Group("/")
			staff.Use(middleware.RequireRole(middleware.RoleAdmin, middleware.RoleManager, middleware.RoleHousekeeping))
			housekeepingHandler.RegisterRoutes(staff)
		}
	}

	internal := r.Group("/internal")
	internal.Use(middleware.InternalTokenAuth(d.HousekeepingTokenHash, logger.Component(d.Log, "internal_auth")))
	housekeepingHandler.RegisterRoutes(internal)

	return &App{
		Router:       r,
		Hub:          hub,
		Availability: availabilityService,
		Reservations: reservationService,
		Invoices:     invoiceService,
		Housekeeping: housekeepingService,
	}
}
