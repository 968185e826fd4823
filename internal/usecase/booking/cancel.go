package booking

import (
	"context"

	"github.com/salonbook/salon-scheduler/internal/audit"
	"github.com/salonbook/salon-scheduler/internal/cache"
	domain "github.com/salonbook/salon-scheduler/internal/domain/booking"
	"github.com/salonbook/salon-scheduler/internal/httperr"
	"github.com/salonbook/salon-scheduler/internal/models"
	"github.com/salonbook/salon-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewCancelAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	availCache *cache.AvailabilityCache,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: auditDispatcher,
		cache: availCache,
	}
}

func (uc *CancelAppointment) Execute(
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
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   actorUserID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	// the freed window may flip its day back to available
	loc := timezone.Location(salon.Timezone)
	start := ap.StartTime.In(loc)
	uc.cache.InvalidateMonth(ctx, salonID, start.Year(), start.Month())

	return ap, nil
}
