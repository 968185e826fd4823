package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonbook/salon-scheduler/internal/httperr"
	"github.com/salonbook/salon-scheduler/internal/httpresp"
	"github.com/salonbook/salon-scheduler/internal/middleware"
	"github.com/salonbook/salon-scheduler/internal/models"
	usecase "github.com/salonbook/salon-scheduler/internal/usecase/booking"
)

type AppointmentHandler struct {
	db          *gorm.DB
	create      *usecase.CreateAppointment
	reschedule  *usecase.RescheduleAppointment
	cancel      *usecase.CancelAppointment
	complete    *usecase.CompleteAppointment
	listByDate  *usecase.ListAppointmentsByDate
	listByMonth *usecase.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	db *gorm.DB,
	create *usecase.CreateAppointment,
	reschedule *usecase.RescheduleAppointment,
	cancel *usecase.CancelAppointment,
	complete *usecase.CompleteAppointment,
	listByDate *usecase.ListAppointmentsByDate,
	listByMonth *usecase.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:          db,
		create:      create,
		reschedule:  reschedule,
		cancel:      cancel,
		complete:    complete,
		listByDate:  listByDate,
		listByMonth: listByMonth,
	}
}

type CreateAppointmentRequest struct {
	EmployeeID  uint   `json:"employee_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	AddonIDs    []uint `json:"addon_ids"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required,hhmm"`
	Notes       string `json:"notes"`
}

// Create books an appointment on behalf of the salon staff. It runs the
// exact same availability pipeline as the public endpoint; staff get no
// shortcut around working hours or conflicts.
func (h *AppointmentHandler) Create(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)
	userIDVal, _ := c.Get(middleware.ContextUserID)
	userID := userIDVal.(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Nieprawidłowe dane wizyty.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		SalonID:     salonID,
		EmployeeID:  req.EmployeeID,
		ServiceID:   req.ServiceID,
		AddonIDs:    req.AddonIDs,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
		ActorUserID: &userID,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ListByDate serves GET /api/me/appointments?date=YYYY-MM-DD[&employee_id=N].
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Parametr date jest wymagany.")
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.Internal(c, "failed_to_get_salon", "Błąd podczas pobierania danych salonu.")
		return
	}

	date, err := parseDateInSalon(&salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Nieprawidłowy format daty. Użyj RRRR-MM-DD.")
		return
	}

	employeeID := uintQuery(c, "employee_id")

	items, err := h.listByDate.Execute(c.Request.Context(), salonID, employeeID, date)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.List(c, items)
}

// ListByMonth serves GET /api/me/appointments/month?year=YYYY&month=M.
func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Nieprawidłowy rok lub miesiąc.")
		return
	}

	employeeID := uintQuery(c, "employee_id")

	items, err := h.listByMonth.Execute(c.Request.Context(), salonID, employeeID, year, month)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.List(c, items)
}

type RescheduleAppointmentRequest struct {
	Date     string  `json:"date"`
	Time     string  `json:"time" binding:"omitempty,hhmm"`
	AddonIDs *[]uint `json:"addon_ids"`
	Notes    *string `json:"notes"`
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)
	userIDVal, _ := c.Get(middleware.ContextUserID)
	userID := userIDVal.(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Nieprawidłowy identyfikator wizyty.")
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Nieprawidłowe dane wizyty.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), usecase.RescheduleAppointmentInput{
		SalonID:       salonID,
		AppointmentID: uint(id),
		ActorUserID:   &userID,
		Date:          req.Date,
		Time:          req.Time,
		AddonIDs:      req.AddonIDs,
		Notes:         req.Notes,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, func(salonID uint, userID *uint, id uint) (*models.Appointment, error) {
		return h.cancel.Execute(c.Request.Context(), salonID, userID, id)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(salonID uint, userID *uint, id uint) (*models.Appointment, error) {
		return h.complete.Execute(c.Request.Context(), salonID, userID, id)
	})
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	run func(salonID uint, userID *uint, id uint) (*models.Appointment, error),
) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)
	userIDVal, _ := c.Get(middleware.ContextUserID)
	userID := userIDVal.(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Nieprawidłowy identyfikator wizyty.")
		return
	}

	ap, err := run(salonID, &userID, uint(id))
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func uintQuery(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}
