package models

import "time"

// Vacation blocks an employee for every date in [StartDate, EndDate],
// inclusive on both ends.
type Vacation struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EmployeeID uint `gorm:"not null;index" json:"employee_id"`

	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	Reason    string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
