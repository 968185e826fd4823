package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salonbook/salon-scheduler/internal/audit"
	"github.com/salonbook/salon-scheduler/internal/cache"
	domain "github.com/salonbook/salon-scheduler/internal/domain/booking"
	"github.com/salonbook/salon-scheduler/internal/httperr"
	"github.com/salonbook/salon-scheduler/internal/models"
	"github.com/salonbook/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	SalonID    uint
	EmployeeID uint
	ServiceID  uint
	AddonIDs   []uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Date  string
	Time  string
	Notes string

	// ActorUserID is nil for public bookings.
	ActorUserID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewCreateAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	availCache *cache.AvailabilityCache,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: auditDispatcher,
		cache: availCache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(salon.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := salon.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 60
	}

	now := timezone.NowIn(salon.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	addons, err := resolveAddons(ctx, uc.repo, in.SalonID, service.ID, in.AddonIDs)
	if err != nil {
		return nil, err
	}

	total := domain.TotalDuration(service.DurationMin, addons)
	end := start.Add(total)

	if _, err := candidateEmployees(ctx, uc.repo, service.ID, in.EmployeeID); err != nil {
		return nil, err
	}

	if err := assertBookable(ctx, uc.repo, salon, in.EmployeeID, start, end); err != nil {
		return nil, err
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.SalonID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		Reference:  uuid.New(),
		SalonID:    in.SalonID,
		EmployeeID: in.EmployeeID,
		ClientID:   client.ID,
		ServiceID:  service.ID,
		StartTime:  start,
		EndTime:    end,
		Status:     string(domain.InitialStatus()),
		Notes:      in.Notes,
	}

	if err := uc.repo.CreateBooked(ctx, ap, addons); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("slot_taken")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   in.ActorUserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.cache.InvalidateMonth(ctx, in.SalonID, start.Year(), start.Month())

	return ap, nil
}
