package booking

import (
	"context"
	"time"

	"github.com/salonbook/salon-scheduler/internal/audit"
	"github.com/salonbook/salon-scheduler/internal/cache"
	domain "github.com/salonbook/salon-scheduler/internal/domain/booking"
	"github.com/salonbook/salon-scheduler/internal/httperr"
	"github.com/salonbook/salon-scheduler/internal/models"
	"github.com/salonbook/salon-scheduler/internal/timezone"
)

type RescheduleAppointmentInput struct {
	SalonID       uint
	AppointmentID uint
	ActorUserID   *uint

	// Empty Date or Time keeps the current value.
	Date string
	Time string

	// Nil keeps the current addon selection; non-nil replaces it and the
	// total duration is recomputed.
	AddonIDs *[]uint

	Notes *string
}

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewRescheduleAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	availCache *cache.AvailabilityCache,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: auditDispatcher,
		cache: availCache,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForSalon(ctx, in.AppointmentID, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)
	oldStart := ap.StartTime.In(loc)

	dateStr := in.Date
	if dateStr == "" {
		dateStr = oldStart.Format("2006-01-02")
	}
	timeStr := in.Time
	if timeStr == "" {
		timeStr = oldStart.Format("15:04")
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, loc)
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

	addons := ap.Addons
	var replacement []models.Addon
	if in.AddonIDs != nil {
		replacement, err = resolveAddons(ctx, uc.repo, in.SalonID, ap.ServiceID, *in.AddonIDs)
		if err != nil {
			return nil, err
		}
		if replacement == nil {
			replacement = []models.Addon{}
		}
		addons = replacement
	}

	total := domain.TotalDuration(ap.Service.DurationMin, addons)
	end := start.Add(total)

	if err := assertBookable(ctx, uc.repo, salon, ap.EmployeeID, start, end); err != nil {
		return nil, err
	}

	if err := domain.Reschedule(ap, start, end); err != nil {
		return nil, err
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if err := uc.repo.RebookTime(ctx, ap, replacement); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("slot_taken")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   in.ActorUserID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.cache.InvalidateMonth(ctx, in.SalonID, oldStart.Year(), oldStart.Month())
	if start.Year() != oldStart.Year() || start.Month() != oldStart.Month() {
		uc.cache.InvalidateMonth(ctx, in.SalonID, start.Year(), start.Month())
	}

	return ap, nil
}
