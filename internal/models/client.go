package models

import "time"

// Client is a booking customer, no login, scoped to one salon.
type Client struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `json:"salon_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
