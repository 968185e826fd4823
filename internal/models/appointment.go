package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Reference uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"reference"`

	SalonID uint  `json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon"`

	EmployeeID uint     `json:"employee_id"`
	Employee   Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"employee"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Addons []Addon `gorm:"many2many:appointment_addons;" json:"addons"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'booked'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
