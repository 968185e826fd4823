package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/salonbook/salon-scheduler/internal/middleware"
	"github.com/salonbook/salon-scheduler/internal/models"
	"github.com/salonbook/salon-scheduler/internal/validators"
)

var registerHHMM sync.Once

func newScheduleTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Employee{},
		&models.Service{},
		&models.Addon{},
		&models.ScheduleEntry{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := db.Create(&models.Employee{ID: 2, SalonID: 1, Name: "Ania", Active: true}).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return db
}

func scheduleRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	registerHHMM.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterValidation("hhmm", validators.HHMM)
		}
	})

	h := NewScheduleHandler(db)

	r := gin.New()
	me := r.Group("/me", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uint(1))
		c.Set(middleware.ContextSalonID, uint(1))
	})
	me.GET("/schedule/:employeeId", h.Get)
	me.PUT("/schedule/:employeeId", h.Update)
	return r
}

func putSchedule(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPut, "/me/schedule/2", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedWeek(t *testing.T, db *gorm.DB) {
	t.Helper()
	entries := []models.ScheduleEntry{
		{EmployeeID: 2, Weekday: 1, StartTime: "08:00", EndTime: "16:00"},
		{EmployeeID: 2, Weekday: 2, StartTime: "08:00", EndTime: "16:00"},
	}
	if err := db.Create(&entries).Error; err != nil {
		t.Fatalf("seed schedule: %v", err)
	}
}

func loadWeek(t *testing.T, db *gorm.DB) []models.ScheduleEntry {
	t.Helper()
	var entries []models.ScheduleEntry
	if err := db.Where("employee_id = ?", 2).Order("weekday ASC").Find(&entries).Error; err != nil {
		t.Fatalf("load schedule: %v", err)
	}
	return entries
}

func TestScheduleUpdateReplacesWeek(t *testing.T) {
	db := newScheduleTestDB(t)
	seedWeek(t, db)
	r := scheduleRouter(db)

	w := putSchedule(t, r, ScheduleUpdateRequest{Days: []ScheduleDayConfig{
		{Weekday: 3, StartTime: "10:00", EndTime: "18:00", BreakStart: "13:00", BreakEnd: "13:30"},
		{Weekday: 6, DayOff: true},
	}})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	entries := loadWeek(t, db)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Weekday != 3 || entries[0].BreakStart != "13:00" {
		t.Errorf("entry 0 = %+v, want weekday 3 with 13:00 break", entries[0])
	}
	if entries[1].Weekday != 6 || !entries[1].DayOff {
		t.Errorf("entry 1 = %+v, want weekday 6 day off", entries[1])
	}
}

func TestScheduleUpdateDuplicateWeekdayLeavesWeekIntact(t *testing.T) {
	db := newScheduleTestDB(t)
	seedWeek(t, db)
	r := scheduleRouter(db)

	w := putSchedule(t, r, ScheduleUpdateRequest{Days: []ScheduleDayConfig{
		{Weekday: 4, StartTime: "09:00", EndTime: "17:00"},
		{Weekday: 4, StartTime: "10:00", EndTime: "18:00"},
	}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}

	entries := loadWeek(t, db)
	if len(entries) != 2 || entries[0].Weekday != 1 || entries[1].Weekday != 2 {
		t.Errorf("rejected update must not touch the stored week, got %+v", entries)
	}
}

func TestScheduleUpdateRollsBackOnWriteFailure(t *testing.T) {
	db := newScheduleTestDB(t)
	seedWeek(t, db)
	r := scheduleRouter(db)

	// Fail the batch insert after the delete has run; the old week must
	// survive the rollback.
	err := db.Callback().Create().Before("gorm:create").Register("fail_schedule_insert", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*[]models.ScheduleEntry); ok {
			tx.AddError(errors.New("write refused"))
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	w := putSchedule(t, r, ScheduleUpdateRequest{Days: []ScheduleDayConfig{
		{Weekday: 5, StartTime: "09:00", EndTime: "17:00"},
	}})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500: %s", w.Code, w.Body.String())
	}

	entries := loadWeek(t, db)
	if len(entries) != 2 || entries[0].Weekday != 1 || entries[1].Weekday != 2 {
		t.Errorf("failed update must leave the previous week in place, got %+v", entries)
	}
}
