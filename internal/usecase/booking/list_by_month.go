package booking

import (
	"context"
	"time"

	domain "github.com/salonbook/salon-scheduler/internal/domain/booking"
	"github.com/salonbook/salon-scheduler/internal/dto"
	"github.com/salonbook/salon-scheduler/internal/models"
	"github.com/salonbook/salon-scheduler/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	salonID uint,
	employeeID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

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

func toListDTOs(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:           ap.ID,
			Reference:    ap.Reference,
			StartTime:    ap.StartTime,
			EndTime:      ap.EndTime,
			Status:       ap.Status,
			ClientName:   ap.Client.Name,
			EmployeeName: ap.Employee.Name,
			ServiceName:  ap.Service.Name,
		})
	}
	return out
}
