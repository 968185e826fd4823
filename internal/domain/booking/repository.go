package booking

import (
	"context"
	"time"

	"github.com/salonbook/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetSalonBySlug(
		ctx context.Context,
		slug string,
	) (*models.Salon, error)

	// -------- Service / addons --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	ListServiceEmployees(
		ctx context.Context,
		serviceID uint,
	) ([]models.Employee, error)

	GetEmployee(
		ctx context.Context,
		salonID uint,
		employeeID uint,
	) (*models.Employee, error)

	GetAddons(
		ctx context.Context,
		salonID uint,
		serviceID uint,
		ids []uint,
	) ([]models.Addon, error)

	// -------- Calendar constraints --------
	GetScheduleEntry(
		ctx context.Context,
		employeeID uint,
		weekday int,
	) (*models.ScheduleEntry, error)

	HasVacation(
		ctx context.Context,
		employeeID uint,
		date time.Time,
	) (bool, error)

	HasSalonHoliday(
		ctx context.Context,
		salonID uint,
		date time.Time,
	) (bool, error)

	// -------- Appointments (read) --------
	ListAppointmentsForDay(
		ctx context.Context,
		employeeID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		salonID uint,
		employeeID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	GetAppointmentForSalon(
		ctx context.Context,
		appointmentID uint,
		salonID uint,
	) (*models.Appointment, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Booking writer --------
	// CreateBooked and RebookTime re-check the overlap invariant inside
	// the same transaction as the write ("slot_taken" business error on
	// conflict); RebookTime excludes the appointment's own interval.
	CreateBooked(
		ctx context.Context,
		ap *models.Appointment,
		addons []models.Addon,
	) error

	RebookTime(
		ctx context.Context,
		ap *models.Appointment,
		addons []models.Addon,
	) error

	// -------- Appointment (state change) --------
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
