package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonbook/salon-scheduler/internal/middleware"
	"github.com/salonbook/salon-scheduler/internal/models"
)

type EmployeeHandler struct {
	db *gorm.DB
}

func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{db: db}
}

// --------- Requests ---------

type CreateEmployeeRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateEmployeeRequest struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *EmployeeHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var employees []models.Employee
	if err := h.db.
		Where("salon_id = ?", salonID).
		Order("id ASC").
		Find(&employees).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_employees"})
		return
	}

	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	employee := models.Employee{
		SalonID: salonID,
		Name:    req.Name,
		Active:  true,
	}

	if err := h.db.Create(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_employee"})
		return
	}

	writeAudit(h.db, salonID, &userID, "employee_created", "employee", &employee.ID, nil)

	c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id := c.Param("id")

	var employee models.Employee
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&employee).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_employee"})
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}

	if err := h.db.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_employee"})
		return
	}

	c.JSON(http.StatusOK, employee)
}
