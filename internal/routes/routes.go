package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonbook/salon-scheduler/internal/audit"
	"github.com/salonbook/salon-scheduler/internal/cache"
	"github.com/salonbook/salon-scheduler/internal/config"
	"github.com/salonbook/salon-scheduler/internal/handlers"
	infraRepo "github.com/salonbook/salon-scheduler/internal/infra/repository"
	"github.com/salonbook/salon-scheduler/internal/middleware"
	ucBooking "github.com/salonbook/salon-scheduler/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	availCache *cache.AvailabilityCache,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	getSlotsUC := ucBooking.NewGetSlots(
		bookingRepo,
		cfg.SlotGranularityMinutes,
	)

	availableDaysUC := ucBooking.NewAvailableDays(
		bookingRepo,
		availCache,
		cfg.SlotGranularityMinutes,
	)

	createAppointmentUC := ucBooking.NewCreateAppointment(
		bookingRepo,
		auditDispatcher,
		availCache,
	)

	rescheduleAppointmentUC := ucBooking.NewRescheduleAppointment(
		bookingRepo,
		auditDispatcher,
		availCache,
	)

	cancelAppointmentUC := ucBooking.NewCancelAppointment(
		bookingRepo,
		auditDispatcher,
		availCache,
	)

	completeAppointmentUC := ucBooking.NewCompleteAppointment(
		bookingRepo,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucBooking.NewListAppointmentsByDate(
		bookingRepo,
	)

	listAppointmentsByMonthUC := ucBooking.NewListAppointmentsByMonth(
		bookingRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db)

	employeeHandler := handlers.NewEmployeeHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	addonHandler := handlers.NewAddonHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)
	vacationHandler := handlers.NewVacationHandler(db)
	holidayHandler := handlers.NewHolidayHandler(db)
	clientHandler := handlers.NewClientHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		rescheduleAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	publicHandler := handlers.NewPublicHandler(
		db,
		getSlotsUC,
		availableDaysUC,
		createAppointmentUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC BOOKING FLOW
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/available-days", publicHandler.AvailableDays)
			publicAPI.GET("/:slug/available", publicHandler.AvailableSlots)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/salon", salonHandler.GetMeSalon)
			secured.PATCH("/me/salon", salonHandler.UpdateMeSalon)

			secured.GET("/me/employees", employeeHandler.List)
			secured.POST("/me/employees", employeeHandler.Create)
			secured.PATCH("/me/employees/:id", employeeHandler.Update)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/addons", addonHandler.List)
			secured.POST("/me/addons", addonHandler.Create)
			secured.PATCH("/me/addons/:id", addonHandler.Update)

			secured.GET("/me/schedule/:employeeId", scheduleHandler.Get)
			secured.PUT("/me/schedule/:employeeId", scheduleHandler.Update)

			secured.GET("/me/vacations", vacationHandler.List)
			secured.POST("/me/vacations", vacationHandler.Create)
			secured.DELETE("/me/vacations/:id", vacationHandler.Delete)

			secured.GET("/me/holidays", holidayHandler.List)
			secured.POST("/me/holidays", holidayHandler.Create)
			secured.DELETE("/me/holidays/:id", holidayHandler.Delete)

			secured.GET("/me/clients", clientHandler.List)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PUT("/me/appointments/:id", appointmentHandler.Reschedule)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
