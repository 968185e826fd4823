package dto

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	Reference    uuid.UUID `json:"reference"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	ClientName   string    `json:"client_name"`
	EmployeeName string    `json:"employee_name"`
	ServiceName  string    `json:"service_name"`
}
