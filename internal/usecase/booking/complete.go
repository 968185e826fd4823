package booking

import (
	"context"

	"github.com/salonbook/salon-scheduler/internal/audit"
	domain "github.com/salonbook/salon-scheduler/internal/domain/booking"
	"github.com/salonbook/salon-scheduler/internal/httperr"
	"github.com/salonbook/salon-scheduler/internal/models"
	"github.com/salonbook/salon-scheduler/internal/timezone"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: auditDispatcher,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	salonID uint,
	actorUserID *uint,
	appointmentID uint,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForSalon(ctx, appointmentID, salonID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(salon.Timezone)
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   actorUserID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
