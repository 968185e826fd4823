package models

import "time"

// Addon extends a booking with extra duration and price. ServiceID scopes
// the addon to a single service; nil means available for every service of
// the salon.
type Addon struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	SalonID   uint  `json:"salon_id"`
	ServiceID *uint `json:"service_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
