package booking

import "time"

// AvailabilityInput describes one slot query. EmployeeID == 0 means "any":
// every active employee qualified for the service is considered.
type AvailabilityInput struct {
	SalonID    uint
	EmployeeID uint
	ServiceID  uint
	AddonIDs   []uint
	Date       time.Time
}

// Slot is a candidate bookable window. Start and End are clock strings
// ("15:04") in the salon's timezone.
type Slot struct {
	EmployeeID   uint   `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Start        string `json:"start_time"`
	End          string `json:"end_time"`
}
