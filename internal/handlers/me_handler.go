package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonbook/salon-scheduler/internal/middleware"
	"github.com/salonbook/salon-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var user models.User
	if err := h.db.Preload("Salon").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	var employee models.Employee
	var employeeID *uint
	if err := h.db.Where("user_id = ?", user.ID).First(&employee).Error; err == nil {
		employeeID = &employee.ID
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"phone":    user.Phone,
			"role":     user.Role,
			"salon_id": user.SalonID,
		},
		"salon": gin.H{
			"id":       user.Salon.ID,
			"name":     user.Salon.Name,
			"slug":     user.Salon.Slug,
			"phone":    user.Salon.Phone,
			"address":  user.Salon.Address,
			"timezone": user.Salon.Timezone,
		},
		"employee_id": employeeID,
	})
}
