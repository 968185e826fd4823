package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/salonbook/salon-scheduler/internal/domain/booking"
	"github.com/salonbook/salon-scheduler/internal/httperr"
	"github.com/salonbook/salon-scheduler/internal/models"
)

// candidateEmployees resolves the employee set for an availability query:
// the one requested employee (who must be qualified for the service and
// active) or, for "any", every active employee linked to the service.
func candidateEmployees(
	ctx context.Context,
	repo domain.Repository,
	serviceID uint,
	employeeID uint,
) ([]models.Employee, error) {

	qualified, err := repo.ListServiceEmployees(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	if employeeID == 0 {
		return qualified, nil
	}

	for _, e := range qualified {
		if e.ID == employeeID {
			return []models.Employee{e}, nil
		}
	}

	return nil, httperr.ErrBusiness("employee_not_available")
}

// resolveAddons loads and validates the selected addons for a service.
// Every requested id must resolve to an active addon of the salon scoped
// to this service (or unscoped).
func resolveAddons(
	ctx context.Context,
	repo domain.Repository,
	salonID uint,
	serviceID uint,
	ids []uint,
) ([]models.Addon, error) {

	if len(ids) == 0 {
		return nil, nil
	}

	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	addons, err := repo.GetAddons(ctx, salonID, serviceID, unique)
	if err != nil {
		return nil, err
	}
	if len(addons) != len(unique) {
		return nil, httperr.ErrBusiness("addon_not_found")
	}

	return addons, nil
}

// assertBookable runs the calendar-side checks a booking must pass before
// the transactional overlap check: working hours (with break), vacation,
// salon holiday.
func assertBookable(
	ctx context.Context,
	repo domain.Repository,
	salon *models.Salon,
	employeeID uint,
	start time.Time,
	end time.Time,
) error {

	// No entry for the weekday means the employee does not work that day;
	// any other lookup failure is infrastructure and must surface as such.
	entry, err := repo.GetScheduleEntry(ctx, employeeID, int(start.Weekday()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("outside_working_hours")
		}
		return err
	}
	if !domain.WithinWorkingHours(entry, start, end) {
		return httperr.ErrBusiness("outside_working_hours")
	}

	onVacation, err := repo.HasVacation(ctx, employeeID, start)
	if err != nil {
		return err
	}
	if onVacation {
		return httperr.ErrBusiness("employee_unavailable")
	}

	holiday, err := repo.HasSalonHoliday(ctx, salon.ID, start)
	if err != nil {
		return err
	}
	if holiday {
		return httperr.ErrBusiness("salon_closed")
	}

	return nil
}

// employeeFreeIntervals computes the employee's free sub-intervals on the
// given day: working window minus break minus booked appointments. A day
// off, a missing schedule entry or a vacation yields no intervals.
func employeeFreeIntervals(
	ctx context.Context,
	repo domain.Repository,
	employeeID uint,
	day time.Time,
) ([]domain.Interval, error) {

	entry, err := repo.GetScheduleEntry(ctx, employeeID, int(day.Weekday()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	window := domain.WorkingWindow(entry, day)
	if window.IsZero() {
		return nil, nil
	}

	onVacation, err := repo.HasVacation(ctx, employeeID, day)
	if err != nil {
		return nil, err
	}
	if onVacation {
		return nil, nil
	}

	appointments, err := repo.ListAppointmentsForDay(
		ctx,
		employeeID,
		window.Start,
		window.End,
	)
	if err != nil {
		return nil, err
	}

	blocks := make([]domain.Interval, 0, len(appointments)+1)
	if brk := domain.BreakWindow(entry, day); !brk.IsZero() {
		blocks = append(blocks, brk)
	}
	for _, ap := range appointments {
		blocks = append(blocks, domain.Interval{Start: ap.StartTime, End: ap.EndTime})
	}

	return domain.FreeIntervals(window, blocks), nil
}
