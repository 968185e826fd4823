package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonbook/salon-scheduler/internal/middleware"
	"github.com/salonbook/salon-scheduler/internal/models"
)

type AddonHandler struct {
	db *gorm.DB
}

func NewAddonHandler(db *gorm.DB) *AddonHandler {
	return &AddonHandler{db: db}
}

// --------- Requests ---------

type CreateAddonRequest struct {
	Name        string  `json:"name" binding:"required"`
	DurationMin int     `json:"duration_min" binding:"min=0"`
	Price       float64 `json:"price"`
	ServiceID   *uint   `json:"service_id"`
}

type UpdateAddonRequest struct {
	Name        *string  `json:"name,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *AddonHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	q := h.db.Where("salon_id = ?", salonID)

	if serviceID := c.Query("service_id"); serviceID != "" {
		q = q.Where("service_id IS NULL OR service_id = ?", serviceID)
	}

	var addons []models.Addon
	if err := q.Order("id ASC").Find(&addons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_addons"})
		return
	}

	c.JSON(http.StatusOK, addons)
}

func (h *AddonHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateAddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.ServiceID != nil {
		var count int64
		h.db.Model(&models.Service{}).
			Where("id = ? AND salon_id = ?", *req.ServiceID, salonID).
			Count(&count)
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "service_not_found"})
			return
		}
	}

	addon := models.Addon{
		SalonID:     salonID,
		ServiceID:   req.ServiceID,
		Name:        req.Name,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      true,
	}

	if err := h.db.Create(&addon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_addon"})
		return
	}

	c.JSON(http.StatusCreated, addon)
}

func (h *AddonHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id := c.Param("id")

	var addon models.Addon
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&addon).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "addon_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_addon"})
		return
	}

	var req UpdateAddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		addon.Name = *req.Name
	}
	if req.DurationMin != nil {
		addon.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		addon.Price = *req.Price
	}
	if req.Active != nil {
		addon.Active = *req.Active
	}

	if err := h.db.Save(&addon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_addon"})
		return
	}

	c.JSON(http.StatusOK, addon)
}
