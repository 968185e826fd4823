package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/salonbook/salon-scheduler/internal/domain/booking"
	"github.com/salonbook/salon-scheduler/internal/httperr"
	"github.com/salonbook/salon-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *BookingGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *BookingGormRepository) GetSalonBySlug(
	ctx context.Context,
	slug string,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&salon).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Service / addons
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ? AND active = true", serviceID, salonID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *BookingGormRepository) ListServiceEmployees(
	ctx context.Context,
	serviceID uint,
) ([]models.Employee, error) {

	var employees []models.Employee
	if err := r.db.WithContext(ctx).
		Joins("JOIN service_employees ON service_employees.employee_id = employees.id").
		Where("service_employees.service_id = ? AND employees.active = true", serviceID).
		Order("employees.id ASC").
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *BookingGormRepository) GetEmployee(
	ctx context.Context,
	salonID uint,
	employeeID uint,
) (*models.Employee, error) {

	var employee models.Employee
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", employeeID, salonID).
		First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *BookingGormRepository) GetAddons(
	ctx context.Context,
	salonID uint,
	serviceID uint,
	ids []uint,
) ([]models.Addon, error) {

	if len(ids) == 0 {
		return nil, nil
	}

	var addons []models.Addon
	if err := r.db.WithContext(ctx).
		Where(
			"id IN ? AND salon_id = ? AND active = true AND (service_id IS NULL OR service_id = ?)",
			ids, salonID, serviceID,
		).
		Find(&addons).Error; err != nil {
		return nil, err
	}
	return addons, nil
}

// --------------------------------------------------
// Calendar constraints
// --------------------------------------------------

func (r *BookingGormRepository) GetScheduleEntry(
	ctx context.Context,
	employeeID uint,
	weekday int,
) (*models.ScheduleEntry, error) {

	var entry models.ScheduleEntry
	if err := r.db.WithContext(ctx).
		Where("employee_id = ? AND weekday = ?", employeeID, weekday).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *BookingGormRepository) HasVacation(
	ctx context.Context,
	employeeID uint,
	date time.Time,
) (bool, error) {

	day := date.Format("2006-01-02")

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Vacation{}).
		Where(
			"employee_id = ? AND start_date <= ? AND end_date >= ?",
			employeeID, day, day,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) HasSalonHoliday(
	ctx context.Context,
	salonID uint,
	date time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SalonHoliday{}).
		Where("salon_id = ? AND date = ?", salonID, date.Format("2006-01-02")).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Appointments (read)
// --------------------------------------------------

func (r *BookingGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"employee_id = ? AND status = 'booked' AND start_time < ? AND end_time > ?",
			employeeID, end, start,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *BookingGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	salonID uint,
	employeeID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Employee").
		Preload("Addons").
		Where(
			"salon_id = ? AND start_time >= ? AND start_time < ?",
			salonID, start, end,
		)

	if employeeID != 0 {
		q = q.Where("employee_id = ?", employeeID)
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *BookingGormRepository) GetAppointmentForSalon(
	ctx context.Context,
	appointmentID uint,
	salonID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Addons").
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	salonID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND phone = ?", salonID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		SalonID: salonID,
		Name:    name,
		Phone:   phone,
		Email:   email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Booking writer
// --------------------------------------------------

// overlappingBooked builds the locked scan over the employee's booked
// appointments intersecting [start, end). excludeID skips the
// appointment's own row on reschedule. Postgres refuses FOR UPDATE on
// aggregate queries, so the scan selects ids and callers check emptiness.
func overlappingBooked(
	tx *gorm.DB,
	employeeID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) *gorm.DB {

	q := tx.
		Model(&models.Appointment{}).
		Select("id").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"employee_id = ? AND status = 'booked' AND start_time < ? AND end_time > ?",
			employeeID, end, start,
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	return q
}

// assertNoOverlap runs the conflict scan. Must run inside the same
// transaction as the write.
func assertNoOverlap(
	tx *gorm.DB,
	employeeID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) error {

	var held []struct{ ID uint }
	if err := overlappingBooked(tx, employeeID, start, end, excludeID).
		Limit(1).
		Find(&held).Error; err != nil {
		return err
	}

	if len(held) > 0 {
		return httperr.ErrBusiness("slot_taken")
	}

	return nil
}

func (r *BookingGormRepository) CreateBooked(
	ctx context.Context,
	ap *models.Appointment,
	addons []models.Addon,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoOverlap(tx, ap.EmployeeID, ap.StartTime, ap.EndTime, 0); err != nil {
			return err
		}

		if err := tx.Create(ap).Error; err != nil {
			return err
		}

		if len(addons) > 0 {
			if err := tx.Model(ap).Association("Addons").Append(addons); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *BookingGormRepository) RebookTime(
	ctx context.Context,
	ap *models.Appointment,
	addons []models.Addon,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoOverlap(tx, ap.EmployeeID, ap.StartTime, ap.EndTime, ap.ID); err != nil {
			return err
		}

		if err := tx.Omit("Addons").Save(ap).Error; err != nil {
			return err
		}

		if addons != nil {
			if err := tx.Model(ap).Association("Addons").Replace(addons); err != nil {
				return err
			}
		}

		return nil
	})
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("Addons").Save(ap).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
