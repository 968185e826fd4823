package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonbook/salon-scheduler/internal/middleware"
	"github.com/salonbook/salon-scheduler/internal/models"
)

type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

type ScheduleDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	DayOff     bool   `json:"day_off"`
	StartTime  string `json:"start_time" binding:"hhmm"`
	EndTime    string `json:"end_time" binding:"hhmm"`
	BreakStart string `json:"break_start" binding:"hhmm"`
	BreakEnd   string `json:"break_end" binding:"hhmm"`
}

type ScheduleUpdateRequest struct {
	Days []ScheduleDayConfig `json:"days" binding:"required,dive"`
}

// employeeForSalon resolves the :employeeId param within the caller's
// salon. Writes its own error response on failure.
func (h *ScheduleHandler) employeeForSalon(c *gin.Context) (*models.Employee, bool) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	id := c.Param("employeeId")

	var employee models.Employee
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&employee).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee_not_found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_employee"})
		return nil, false
	}

	return &employee, true
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	employee, ok := h.employeeForSalon(c)
	if !ok {
		return
	}

	var entries []models.ScheduleEntry
	if err := h.db.
		Where("employee_id = ?", employee.ID).
		Order("weekday ASC").
		Find(&entries).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_schedule"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	employee, ok := h.employeeForSalon(c)
	if !ok {
		return
	}

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	seen := make(map[int]bool)
	for _, d := range req.Days {
		if seen[d.Weekday] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate_weekday"})
			return
		}
		seen[d.Weekday] = true

		if !d.DayOff && (d.StartTime == "" || d.EndTime == "") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_working_hours"})
			return
		}
	}

	var toCreate []models.ScheduleEntry
	for _, d := range req.Days {
		entry := models.ScheduleEntry{
			EmployeeID: employee.ID,
			Weekday:    d.Weekday,
			DayOff:     d.DayOff,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
		}
		toCreate = append(toCreate, entry)
	}

	// Replace atomically so a failed write never leaves the employee
	// with a wiped-out week.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employee.ID).Delete(&models.ScheduleEntry{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
