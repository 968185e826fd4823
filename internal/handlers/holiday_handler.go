package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonbook/salon-scheduler/internal/middleware"
	"github.com/salonbook/salon-scheduler/internal/models"
)

type HolidayHandler struct {
	db *gorm.DB
}

func NewHolidayHandler(db *gorm.DB) *HolidayHandler {
	return &HolidayHandler{db: db}
}

type CreateHolidayRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

func (h *HolidayHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var holidays []models.SalonHoliday
	if err := h.db.
		Where("salon_id = ?", salonID).
		Order("date ASC").
		Find(&holidays).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_holidays"})
		return
	}

	c.JSON(http.StatusOK, holidays)
}

func (h *HolidayHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	holiday := models.SalonHoliday{
		SalonID: salonID,
		Date:    date,
		Reason:  req.Reason,
	}

	if err := h.db.Create(&holiday).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_holiday"})
		return
	}

	writeAudit(h.db, salonID, &userID, "holiday_created", "salon_holiday", &holiday.ID, gin.H{
		"date": req.Date,
	})

	c.JSON(http.StatusCreated, holiday)
}

func (h *HolidayHandler) Delete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id := c.Param("id")

	var holiday models.SalonHoliday
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&holiday).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "holiday_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_holiday"})
		return
	}

	if err := h.db.Delete(&holiday).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_holiday"})
		return
	}

	writeAudit(h.db, salonID, &userID, "holiday_deleted", "salon_holiday", &holiday.ID, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
