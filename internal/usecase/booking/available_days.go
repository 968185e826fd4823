package booking

import (
	"context"
	"time"

	"github.com/salonbook/salon-scheduler/internal/cache"
	domain "github.com/salonbook/salon-scheduler/internal/domain/booking"
	"github.com/salonbook/salon-scheduler/internal/httperr"
	"github.com/salonbook/salon-scheduler/internal/timezone"
)

type AvailableDays struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	step  time.Duration
}

func NewAvailableDays(
	repo domain.Repository,
	availCache *cache.AvailabilityCache,
	granularityMinutes int,
) *AvailableDays {
	if granularityMinutes <= 0 {
		granularityMinutes = 15
	}
	return &AvailableDays{
		repo:  repo,
		cache: availCache,
		step:  time.Duration(granularityMinutes) * time.Minute,
	}
}

// Execute classifies every day of the month and returns the available
// ones as ISO dates, ascending. A day counts as available as soon as one
// candidate start exists for one qualified employee; per-day work stops
// at the first hit. Days before today are never available.
func (uc *AvailableDays) Execute(
	ctx context.Context,
	salonID uint,
	serviceID uint,
	employeeID uint,
	year int,
	month time.Month,
) ([]string, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	if days, ok := uc.cache.GetDays(ctx, salonID, serviceID, employeeID, year, month); ok {
		return days, nil
	}

	service, err := uc.repo.GetService(ctx, salonID, serviceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// The month filter runs on the base duration; addon selection happens
	// later in the flow and only narrows the per-day slot list.
	total := domain.TotalDuration(service.DurationMin, nil)

	employees, err := candidateEmployees(ctx, uc.repo, service.ID, employeeID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)
	now := timezone.NowIn(salon.Timezone)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	next := first.AddDate(0, 1, 0)

	days := []string{}

	for day := first; day.Before(next); day = day.AddDate(0, 0, 1) {
		if day.Before(today) {
			continue
		}

		holiday, err := uc.repo.HasSalonHoliday(ctx, salonID, day)
		if err != nil {
			return nil, err
		}
		if holiday {
			continue
		}

		for _, emp := range employees {
			free, err := employeeFreeIntervals(ctx, uc.repo, emp.ID, day)
			if err != nil {
				return nil, err
			}

			if _, ok := domain.FirstStart(free, total, uc.step, now); ok {
				days = append(days, day.Format("2006-01-02"))
				break
			}
		}
	}

	uc.cache.SetDays(ctx, salonID, serviceID, employeeID, year, month, days)

	return days, nil
}
