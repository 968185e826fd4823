package handlers

import (
	"time"

	"github.com/salonbook/salon-scheduler/internal/models"
	"github.com/salonbook/salon-scheduler/internal/timezone"
)

// All client-facing dates and clock times are interpreted in the salon's
// timezone, never the server's.

func locationFromSalon(salon *models.Salon) *time.Location {
	if salon != nil {
		return timezone.Location(salon.Timezone)
	}
	return timezone.Location("")
}

func nowInSalon(salon *models.Salon) time.Time {
	return time.Now().In(locationFromSalon(salon))
}

func parseDateInSalon(salon *models.Salon, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromSalon(salon),
	)
}

func parseDateTimeInSalon(
	salon *models.Salon,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		locationFromSalon(salon),
	)
}
