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

var errNotFound = errors.New("not found")

// fakeRepo is an in-memory domain.Repository for use case tests. Schedule
// entries are keyed by employee and weekday; vacations and holidays by
// ISO date.
type fakeRepo struct {
	salon     *models.Salon
	service   *models.Service
	employees []models.Employee
	addons    []models.Addon

	schedule  map[uint]map[int]*models.ScheduleEntry
	vacations map[uint]map[string]bool
	holidays  map[string]bool

	appointments []models.Appointment

	nextID      uint
	createErr   error
	scheduleErr error
	created     []*models.Appointment
	rebooked    []*models.Appointment
	updated     []*models.Appointment
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salon: &models.Salon{
			ID:                1,
			Name:              "Studio Iza",
			Slug:              "studio-iza",
			Timezone:          "Europe/Warsaw",
			MinAdvanceMinutes: 60,
		},
		service: &models.Service{
			ID:          10,
			SalonID:     1,
			Name:        "Strzyżenie",
			DurationMin: 30,
			Active:      true,
		},
		schedule:  map[uint]map[int]*models.ScheduleEntry{},
		vacations: map[uint]map[string]bool{},
		holidays:  map[string]bool{},
		nextID:    100,
	}
}

func (r *fakeRepo) addEmployee(id uint, name string) {
	r.employees = append(r.employees, models.Employee{
		ID: id, SalonID: r.salon.ID, Name: name, Active: true,
	})
}

func (r *fakeRepo) setHours(employeeID uint, weekday int, start, end string) {
	if r.schedule[employeeID] == nil {
		r.schedule[employeeID] = map[int]*models.ScheduleEntry{}
	}
	r.schedule[employeeID][weekday] = &models.ScheduleEntry{
		EmployeeID: employeeID,
		Weekday:    weekday,
		StartTime:  start,
		EndTime:    end,
	}
}

func (r *fakeRepo) salonLocation() *time.Location {
	loc, _ := time.LoadLocation(r.salon.Timezone)
	return loc
}

func addonFixture(id uint, durationMin int) models.Addon {
	return models.Addon{
		ID:          id,
		SalonID:     1,
		Name:        "Dodatek",
		DurationMin: durationMin,
		Active:      true,
	}
}

func (r *fakeRepo) addVacation(employeeID uint, date string) {
	if r.vacations[employeeID] == nil {
		r.vacations[employeeID] = map[string]bool{}
	}
	r.vacations[employeeID][date] = true
}

func (r *fakeRepo) addAppointment(employeeID uint, start, end time.Time, status string) {
	r.nextID++
	r.appointments = append(r.appointments, models.Appointment{
		ID:         r.nextID,
		SalonID:    r.salon.ID,
		EmployeeID: employeeID,
		ServiceID:  r.service.ID,
		StartTime:  start,
		EndTime:    end,
		Status:     status,
	})
}

func (r *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if r.salon == nil || r.salon.ID != id {
		return nil, errNotFound
	}
	return r.salon, nil
}

func (r *fakeRepo) GetSalonBySlug(_ context.Context, slug string) (*models.Salon, error) {
	if r.salon == nil || r.salon.Slug != slug {
		return nil, errNotFound
	}
	return r.salon, nil
}

func (r *fakeRepo) GetService(_ context.Context, salonID, serviceID uint) (*models.Service, error) {
	if r.service == nil || r.service.ID != serviceID || r.service.SalonID != salonID {
		return nil, errNotFound
	}
	return r.service, nil
}

func (r *fakeRepo) ListServiceEmployees(_ context.Context, serviceID uint) ([]models.Employee, error) {
	if serviceID != r.service.ID {
		return nil, nil
	}
	return r.employees, nil
}

func (r *fakeRepo) GetEmployee(_ context.Context, salonID, employeeID uint) (*models.Employee, error) {
	for i := range r.employees {
		if r.employees[i].ID == employeeID && r.employees[i].SalonID == salonID {
			return &r.employees[i], nil
		}
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetAddons(_ context.Context, salonID, serviceID uint, ids []uint) ([]models.Addon, error) {
	var out []models.Addon
	for _, id := range ids {
		for _, a := range r.addons {
			scoped := a.ServiceID == nil || *a.ServiceID == serviceID
			if a.ID == id && a.SalonID == salonID && scoped && a.Active {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) GetScheduleEntry(_ context.Context, employeeID uint, weekday int) (*models.ScheduleEntry, error) {
	if r.scheduleErr != nil {
		return nil, r.scheduleErr
	}
	entry := r.schedule[employeeID][weekday]
	if entry == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return entry, nil
}

func (r *fakeRepo) HasVacation(_ context.Context, employeeID uint, date time.Time) (bool, error) {
	return r.vacations[employeeID][date.Format("2006-01-02")], nil
}

func (r *fakeRepo) HasSalonHoliday(_ context.Context, salonID uint, date time.Time) (bool, error) {
	if salonID != r.salon.ID {
		return false, nil
	}
	return r.holidays[date.Format("2006-01-02")], nil
}

func (r *fakeRepo) ListAppointmentsForDay(_ context.Context, employeeID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.EmployeeID != employeeID || ap.Status != "booked" {
			continue
		}
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, salonID, employeeID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.SalonID != salonID {
			continue
		}
		if employeeID != 0 && ap.EmployeeID != employeeID {
			continue
		}
		if ap.StartTime.Before(end) && !ap.StartTime.Before(start) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetAppointmentForSalon(_ context.Context, appointmentID, salonID uint) (*models.Appointment, error) {
	for i := range r.appointments {
		if r.appointments[i].ID == appointmentID && r.appointments[i].SalonID == salonID {
			return &r.appointments[i], nil
		}
	}
	return nil, errNotFound
}

func (r *fakeRepo) GetOrCreateClient(_ context.Context, salonID uint, name, phone, email string) (*models.Client, error) {
	return &models.Client{ID: 7, SalonID: salonID, Name: name, Phone: phone, Email: email}, nil
}

// hasOverlap mirrors the transactional conflict scan: booked rows only,
// half-open [start, end) intersection, the own row skipped on reschedule.
func (r *fakeRepo) hasOverlap(employeeID uint, start, end time.Time, excludeID uint) bool {
	for _, ap := range r.appointments {
		if ap.EmployeeID != employeeID || ap.Status != "booked" || ap.ID == excludeID {
			continue
		}
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) CreateBooked(_ context.Context, ap *models.Appointment, addons []models.Addon) error {
	if r.createErr != nil {
		return r.createErr
	}
	if r.hasOverlap(ap.EmployeeID, ap.StartTime, ap.EndTime, 0) {
		return httperr.ErrBusiness("slot_taken")
	}
	r.nextID++
	ap.ID = r.nextID
	ap.Addons = addons
	r.appointments = append(r.appointments, *ap)
	r.created = append(r.created, ap)
	return nil
}

func (r *fakeRepo) RebookTime(_ context.Context, ap *models.Appointment, addons []models.Addon) error {
	if r.createErr != nil {
		return r.createErr
	}
	if r.hasOverlap(ap.EmployeeID, ap.StartTime, ap.EndTime, ap.ID) {
		return httperr.ErrBusiness("slot_taken")
	}
	if addons != nil {
		ap.Addons = addons
	}
	r.rebooked = append(r.rebooked, ap)
	return nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.updated = append(r.updated, ap)
	return nil
}
