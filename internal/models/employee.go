package models

import "time"

// Employee is a bookable staff member. It may be linked to a User login
// (owners and employees who manage their own panel) or exist standalone.
type Employee struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	SalonID uint  `json:"salon_id"`
	UserID  *uint `json:"user_id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Active bool   `gorm:"default:true" json:"active"`

	Services []Service `gorm:"many2many:service_employees;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
