package booking

import "github.com/salonbook/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusBooked    Status = "booked"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ===============================
// Validations
// ===============================

// Appointments are never deleted, only status-transitioned, and every
// transition leaves "booked" exactly once.

func CanCancel(current Status) error {
	if current != StatusBooked {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusBooked {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReschedule(current Status) error {
	if current != StatusBooked {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusBooked
}
