package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonbook/salon-scheduler/internal/middleware"
	"github.com/salonbook/salon-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"required"`
	Category    string  `json:"category"`
	EmployeeIDs []uint  `json:"employee_ids"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Active      *bool    `json:"active,omitempty"`
	EmployeeIDs *[]uint  `json:"employee_ids,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("salon_id = ?", salonID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if activeStr != "" {
		if activeStr == "true" {
			q = q.Where("active = ?", true)
		} else if activeStr == "false" {
			q = q.Where("active = ?", false)
		}
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.
		Preload("Employees").
		Preload("Addons").
		Order("id ASC").
		Find(&services).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	service := models.Service{
		SalonID:     salonID,
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      true,
		Category:    strings.ToLower(req.Category),
	}

	if err := h.db.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_service"})
		return
	}

	if len(req.EmployeeIDs) > 0 {
		if err := h.assignEmployees(c, &service, req.EmployeeIDs, salonID); err != nil {
			return
		}
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	id := c.Param("id")

	var service models.Service
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&service).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_service"})
		return
	}

	if req.EmployeeIDs != nil {
		if err := h.assignEmployees(c, &service, *req.EmployeeIDs, salonID); err != nil {
			return
		}
	}

	c.JSON(http.StatusOK, service)
}

// assignEmployees replaces the service's qualified-employee set. Every id
// must belong to the same salon. Writes its own error response.
func (h *ServiceHandler) assignEmployees(
	c *gin.Context,
	service *models.Service,
	employeeIDs []uint,
	salonID uint,
) error {

	var employees []models.Employee
	if len(employeeIDs) > 0 {
		if err := h.db.
			Where("id IN ? AND salon_id = ?", employeeIDs, salonID).
			Find(&employees).Error; err != nil {

			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_employees"})
			return err
		}

		if len(employees) != len(employeeIDs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "employee_not_found"})
			return gorm.ErrRecordNotFound
		}
	}

	if err := h.db.Model(service).Association("Employees").Replace(employees); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_assign_employees"})
		return err
	}

	service.Employees = employees
	return nil
}
