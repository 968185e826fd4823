package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salonbook/salon-scheduler/internal/domain/booking"
	"github.com/salonbook/salon-scheduler/internal/httperr"
	"github.com/salonbook/salon-scheduler/internal/models"
	usecase "github.com/salonbook/salon-scheduler/internal/usecase/booking"
)

// PublicHandler serves the unauthenticated booking flow, addressed by
// salon slug. Every response is scoped to the resolved salon; ids from
// other salons behave exactly like missing ones.
type PublicHandler struct {
	db            *gorm.DB
	getSlots      *usecase.GetSlots
	availableDays *usecase.AvailableDays
	create        *usecase.CreateAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	getSlots *usecase.GetSlots,
	availableDays *usecase.AvailableDays,
	create *usecase.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:            db,
		getSlots:      getSlots,
		availableDays: availableDays,
		create:        create,
	}
}

func (h *PublicHandler) salonBySlug(c *gin.Context) (*models.Salon, bool) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "salon_not_found", "Salon nie został znaleziony.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_salon", "Błąd podczas pobierania danych salonu.")
		return nil, false
	}
	return &salon, true
}

// ListServices serves GET /api/public/:slug/services with active services,
// their addons and the employees who perform them.
func (h *PublicHandler) ListServices(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("salon_id = ? AND active = ?", salon.ID, true).
		Preload("Addons", "active = ?", true).
		Preload("Employees", "active = ?", true).
		Order("category, name").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Błąd podczas pobierania usług.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salon": gin.H{
			"name":     salon.Name,
			"slug":     salon.Slug,
			"phone":    salon.Phone,
			"address":  salon.Address,
			"timezone": salon.Timezone,
		},
		"services": services,
	})
}

// AvailableDays serves
// GET /api/public/:slug/available-days?service_id&year&month[&employee_id].
func (h *PublicHandler) AvailableDays(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	serviceID := uintQuery(c, "service_id")
	if serviceID == 0 {
		httperr.BadRequest(c, "missing_service", "Parametr service_id jest wymagany.")
		return
	}

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_month", "Nieprawidłowy rok lub miesiąc.")
		return
	}

	days, err := h.availableDays.Execute(
		c.Request.Context(),
		salon.ID,
		serviceID,
		uintQuery(c, "employee_id"),
		year,
		time.Month(month),
	)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"days":  days,
	})
}

// AvailableSlots serves
// GET /api/public/:slug/available?service_id&date[&employee_id][&addons=1,2].
func (h *PublicHandler) AvailableSlots(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	serviceID := uintQuery(c, "service_id")
	if serviceID == 0 {
		httperr.BadRequest(c, "missing_service", "Parametr service_id jest wymagany.")
		return
	}

	date, err := parseDateInSalon(salon, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Nieprawidłowy format daty. Użyj RRRR-MM-DD.")
		return
	}

	addonIDs, err := parseIDList(c.Query("addons"))
	if err != nil {
		httperr.BadRequest(c, "invalid_addons", "Nieprawidłowa lista dodatków.")
		return
	}

	slots, err := h.getSlots.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID:    salon.ID,
		EmployeeID: uintQuery(c, "employee_id"),
		ServiceID:  serviceID,
		AddonIDs:   addonIDs,
		Date:       date,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date.Format("2006-01-02"),
		"slots": slots,
	})
}

type PublicCreateAppointmentRequest struct {
	EmployeeID  uint   `json:"employee_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	AddonIDs    []uint `json:"addon_ids"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required,hhmm"`
	Notes       string `json:"notes"`
}

// CreateAppointment serves POST /api/public/:slug/appointments. A lost
// race for the slot returns 409 with code "slot_taken"; the client is
// expected to refresh the slot list and retry.
func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Nieprawidłowe dane rezerwacji.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		SalonID:     salon.ID,
		EmployeeID:  req.EmployeeID,
		ServiceID:   req.ServiceID,
		AddonIDs:    req.AddonIDs,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"reference":  ap.Reference,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
		"status":     ap.Status,
	})
}

func parseIDList(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(v))
	}
	return ids, nil
}
