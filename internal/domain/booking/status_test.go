package booking

import (
	"testing"
	"time"

	"github.com/salonbook/salon-scheduler/internal/httperr"
	"github.com/salonbook/salon-scheduler/internal/models"
)

func TestCancel(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusBooked)}
	if err := Cancel(ap, now); err != nil {
		t.Fatalf("Cancel(booked) = %v", err)
	}
	if ap.Status != string(StatusCancelled) {
		t.Errorf("status = %q, want cancelled", ap.Status)
	}
	if ap.CancelledAt == nil || !ap.CancelledAt.Equal(now) {
		t.Error("CancelledAt not stamped")
	}

	for _, status := range []Status{StatusCancelled, StatusCompleted} {
		ap := &models.Appointment{Status: string(status)}
		err := Cancel(ap, now)
		if !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("Cancel(%s) = %v, want invalid_state", status, err)
		}
	}
}

func TestComplete(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusBooked)}
	if err := Complete(ap, now); err != nil {
		t.Fatalf("Complete(booked) = %v", err)
	}
	if ap.Status != string(StatusCompleted) {
		t.Errorf("status = %q, want completed", ap.Status)
	}
	if ap.CompletedAt == nil {
		t.Error("CompletedAt not stamped")
	}

	if err := Complete(&models.Appointment{Status: string(StatusCancelled)}, now); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("Complete(cancelled) = %v, want invalid_state", err)
	}
}

func TestReschedule(t *testing.T) {
	start := at(10, 0)
	end := at(10, 45)

	ap := &models.Appointment{Status: string(StatusBooked)}
	if err := Reschedule(ap, start, end); err != nil {
		t.Fatalf("Reschedule(booked) = %v", err)
	}
	if !ap.StartTime.Equal(start) || !ap.EndTime.Equal(end) {
		t.Errorf("times = %v - %v, want %v - %v", ap.StartTime, ap.EndTime, start, end)
	}
	if ap.Status != string(StatusBooked) {
		t.Errorf("status = %q, a reschedule keeps the appointment booked", ap.Status)
	}

	if err := Reschedule(&models.Appointment{Status: string(StatusCompleted)}, start, end); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("Reschedule(completed) = %v, want invalid_state", err)
	}
}
