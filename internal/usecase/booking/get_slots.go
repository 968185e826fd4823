package booking

import (
	"context"
	"sort"
	"time"

	domain "github.com/salonbook/salon-scheduler/internal/domain/booking"
	"github.com/salonbook/salon-scheduler/internal/httperr"
	"github.com/salonbook/salon-scheduler/internal/timezone"
)

type GetSlots struct {
	repo domain.Repository
	step time.Duration
}

func NewGetSlots(repo domain.Repository, granularityMinutes int) *GetSlots {
	if granularityMinutes <= 0 {
		granularityMinutes = 15
	}
	return &GetSlots{
		repo: repo,
		step: time.Duration(granularityMinutes) * time.Minute,
	}
}

// Execute returns every bookable slot for the service on the given day,
// ordered by start time then employee. Results are unique per
// (employee, start); consumers never need to dedupe.
func (uc *GetSlots) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
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

	holiday, err := uc.repo.HasSalonHoliday(ctx, in.SalonID, in.Date)
	if err != nil {
		return nil, err
	}
	if holiday {
		return []domain.Slot{}, nil
	}

	employees, err := candidateEmployees(ctx, uc.repo, service.ID, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(salon.Timezone)

	slots := []domain.Slot{}
	seen := make(map[[2]int64]bool)

	for _, emp := range employees {
		free, err := employeeFreeIntervals(ctx, uc.repo, emp.ID, in.Date)
		if err != nil {
			return nil, err
		}

		for _, start := range domain.EnumerateStarts(free, total, uc.step, now) {
			key := [2]int64{int64(emp.ID), start.Unix()}
			if seen[key] {
				continue
			}
			seen[key] = true

			slots = append(slots, domain.Slot{
				EmployeeID:   emp.ID,
				EmployeeName: emp.Name,
				Start:        start.Format("15:04"),
				End:          start.Add(total).Format("15:04"),
			})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Start != slots[j].Start {
			return slots[i].Start < slots[j].Start
		}
		return slots[i].EmployeeID < slots[j].EmployeeID
	})

	return slots, nil
}
