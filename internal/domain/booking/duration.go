package booking

import (
	"time"

	"github.com/salonbook/salon-scheduler/internal/models"
)

// TotalDuration combines the service's base duration with the selected
// addons. Zero addons is valid.
func TotalDuration(serviceMin int, addons []models.Addon) time.Duration {
	total := serviceMin
	for _, a := range addons {
		total += a.DurationMin
	}
	return time.Duration(total) * time.Minute
}
