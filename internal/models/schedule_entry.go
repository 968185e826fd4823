package models

import "time"

// ScheduleEntry defines one weekday of an employee's working hours.
// Times are stored as "HH:MM" strings in the salon's timezone.
type ScheduleEntry struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EmployeeID uint `gorm:"uniqueIndex:idx_schedule_employee_weekday" json:"employee_id"`

	Weekday int `gorm:"uniqueIndex:idx_schedule_employee_weekday" json:"weekday"`

	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
	DayOff     bool   `json:"day_off"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
