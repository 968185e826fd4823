package booking

import (
	"time"

	"github.com/salonbook/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func Reschedule(ap *models.Appointment, start, end time.Time) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	ap.StartTime = start
	ap.EndTime = end
	return nil
}
