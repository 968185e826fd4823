package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonbook/salon-scheduler/internal/httperr"
	"github.com/salonbook/salon-scheduler/internal/middleware"
	"github.com/salonbook/salon-scheduler/internal/models"
	"github.com/salonbook/salon-scheduler/internal/timezone"
)

type SalonHandler struct {
	db *gorm.DB
}

func NewSalonHandler(db *gorm.DB) *SalonHandler {
	return &SalonHandler{db: db}
}

type UpdateSalonConfigRequest struct {
	Name              *string `json:"name,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Address           *string `json:"address,omitempty"`
	Timezone          *string `json:"timezone,omitempty"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes,omitempty"`
}

func (h *SalonHandler) GetMeSalon(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "salon_not_found", "Salon nie został znaleziony.")
			return
		}
		httperr.Internal(c, "failed_to_get_salon", "Błąd podczas pobierania danych salonu.")
		return
	}

	c.JSON(http.StatusOK, salon)
}

func (h *SalonHandler) UpdateMeSalon(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "salon_not_found", "Salon nie został znaleziony.")
			return
		}
		httperr.Internal(c, "failed_to_get_salon", "Błąd podczas pobierania danych salonu.")
		return
	}

	var req UpdateSalonConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nieprawidłowe dane żądania.")
		return
	}

	if req.Name != nil {
		salon.Name = *req.Name
	}
	if req.Phone != nil {
		salon.Phone = *req.Phone
	}
	if req.Address != nil {
		salon.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Nieprawidłowa strefa czasowa.")
			return
		}
		salon.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Minimalne wyprzedzenie musi być nieujemne (w minutach).")
			return
		}
		salon.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Błąd podczas zapisywania ustawień salonu.")
		return
	}

	c.JSON(http.StatusOK, salon)
}
