package models

import "time"

// SalonHoliday blocks every employee of the salon on a single date.
type SalonHoliday struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"not null;index" json:"salon_id"`

	Date   time.Time `gorm:"type:date;not null" json:"date"`
	Reason string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
