package booking

import (
	"context"
	"time"

	domain "github.com/salonbook/salon-scheduler/internal/domain/booking"
	"github.com/salonbook/salon-scheduler/internal/dto"
	"github.com/salonbook/salon-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// employeeID == 0 lists the whole salon.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	salonID uint,
	employeeID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		salonID,
		employeeID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}
