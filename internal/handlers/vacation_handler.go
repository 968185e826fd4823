package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonbook/salon-scheduler/internal/middleware"
	"github.com/salonbook/salon-scheduler/internal/models"
)

type VacationHandler struct {
	db *gorm.DB
}

func NewVacationHandler(db *gorm.DB) *VacationHandler {
	return &VacationHandler{db: db}
}

type CreateVacationRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

func (h *VacationHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	q := h.db.
		Joins("JOIN employees ON employees.id = vacations.employee_id").
		Where("employees.salon_id = ?", salonID)

	if employeeID := c.Query("employee_id"); employeeID != "" {
		q = q.Where("vacations.employee_id = ?", employeeID)
	}

	var vacations []models.Vacation
	if err := q.Order("vacations.start_date ASC").Find(&vacations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_vacations"})
		return
	}

	c.JSON(http.StatusOK, vacations)
}

func (h *VacationHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateVacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var employee models.Employee
	if err := h.db.
		Where("id = ? AND salon_id = ?", req.EmployeeID, salonID).
		First(&employee).Error; err != nil {

		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_not_found"})
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_start_date"})
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_end_date"})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_before_start"})
		return
	}

	vacation := models.Vacation{
		EmployeeID: employee.ID,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
	}

	if err := h.db.Create(&vacation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_vacation"})
		return
	}

	writeAudit(h.db, salonID, &userID, "vacation_created", "vacation", &vacation.ID, gin.H{
		"employee_id": employee.ID,
		"start_date":  req.StartDate,
		"end_date":    req.EndDate,
	})

	c.JSON(http.StatusCreated, vacation)
}

func (h *VacationHandler) Delete(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id := c.Param("id")

	var vacation models.Vacation
	if err := h.db.
		Joins("JOIN employees ON employees.id = vacations.employee_id").
		Where("vacations.id = ? AND employees.salon_id = ?", id, salonID).
		First(&vacation).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "vacation_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_vacation"})
		return
	}

	if err := h.db.Delete(&vacation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_vacation"})
		return
	}

	writeAudit(h.db, salonID, &userID, "vacation_deleted", "vacation", &vacation.ID, nil)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
