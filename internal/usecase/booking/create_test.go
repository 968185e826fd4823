package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/salonbook/salon-scheduler/internal/audit"
	"github.com/salonbook/salon-scheduler/internal/cache"
	"github.com/salonbook/salon-scheduler/internal/httperr"
)

func newCreateUC(repo *fakeRepo) *CreateAppointment {
	return NewCreateAppointment(
		repo,
		audit.NewDispatcher(audit.New(nil)),
		cache.New(""),
	)
}

func bookingInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		SalonID:     1,
		EmployeeID:  2,
		ServiceID:   10,
		ClientName:  "Jan Kowalski",
		ClientPhone: "+48 600 100 200",
		Date:        "2030-04-01",
		Time:        "10:00",
	}
}

func TestCreateAppointment(t *testing.T) {
	repo := newFakeRepo()
	repo.addEmployee(2, "Ania")
	repo.setHours(2, monday, "09:00", "17:00")

	ap, err := newCreateUC(repo).Execute(context.Background(), bookingInput())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ap.Status != "booked" {
		t.Errorf("status = %q, want booked", ap.Status)
	}
	if ap.Reference == uuid.Nil {
		t.Error("reference uuid not assigned")
	}
	if got := ap.EndTime.Sub(ap.StartTime); got != 30*time.Minute {
		t.Errorf("duration = %v, want 30m", got)
	}
	if ap.StartTime.Format("2006-01-02 15:04") != "2030-04-01 10:00" {
		t.Errorf("start = %v, want 2030-04-01 10:00", ap.StartTime)
	}
	if ap.ClientID == 0 {
		t.Error("client not resolved")
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d appointments, want 1", len(repo.created))
	}
}

func TestCreateAppointmentAddonExtendsEnd(t *testing.T) {
	repo := newFakeRepo()
	repo.addEmployee(2, "Ania")
	repo.setHours(2, monday, "09:00", "17:00")
	repo.addons = append(repo.addons, addonFixture(20, 15))

	in := bookingInput()
	in.AddonIDs = []uint{20}

	ap, err := newCreateUC(repo).Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := ap.EndTime.Sub(ap.StartTime); got != 45*time.Minute {
		t.Errorf("duration = %v, want 45m with the addon", got)
	}
}

func TestCreateAppointmentScheduleLookupFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.addEmployee(2, "Ania")
	repo.setHours(2, monday, "09:00", "17:00")
	repo.scheduleErr = errors.New("connection refused")

	_, err := newCreateUC(repo).Execute(context.Background(), bookingInput())
	if err == nil {
		t.Fatal("a datastore outage must fail the booking")
	}
	if httperr.IsBusiness(err, "outside_working_hours") {
		t.Errorf("err = %v, a lookup failure is not a closed day", err)
	}
	if len(repo.created) != 0 {
		t.Error("no appointment should be written on a lookup failure")
	}
}

func TestCreateAppointmentRejections(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*fakeRepo, *CreateAppointmentInput)
		wantCode string
	}{
		{
			name: "malformed time",
			mutate: func(_ *fakeRepo, in *CreateAppointmentInput) {
				in.Time = "25:99"
			},
			wantCode: "invalid_date_or_time",
		},
		{
			name: "start in the past",
			mutate: func(_ *fakeRepo, in *CreateAppointmentInput) {
				in.Date = "2020-01-06"
			},
			wantCode: "too_soon",
		},
		{
			name: "unknown service",
			mutate: func(_ *fakeRepo, in *CreateAppointmentInput) {
				in.ServiceID = 999
			},
			wantCode: "service_not_found",
		},
		{
			name: "unknown addon",
			mutate: func(_ *fakeRepo, in *CreateAppointmentInput) {
				in.AddonIDs = []uint{999}
			},
			wantCode: "addon_not_found",
		},
		{
			name: "employee not qualified",
			mutate: func(_ *fakeRepo, in *CreateAppointmentInput) {
				in.EmployeeID = 99
			},
			wantCode: "employee_not_available",
		},
		{
			name: "outside working hours",
			mutate: func(_ *fakeRepo, in *CreateAppointmentInput) {
				in.Time = "18:00"
			},
			wantCode: "outside_working_hours",
		},
		{
			name: "straddles closing time",
			mutate: func(_ *fakeRepo, in *CreateAppointmentInput) {
				in.Time = "16:45"
			},
			wantCode: "outside_working_hours",
		},
		{
			name: "employee on vacation",
			mutate: func(r *fakeRepo, _ *CreateAppointmentInput) {
				r.addVacation(2, "2030-04-01")
			},
			wantCode: "employee_unavailable",
		},
		{
			name: "salon holiday",
			mutate: func(r *fakeRepo, _ *CreateAppointmentInput) {
				r.holidays["2030-04-01"] = true
			},
			wantCode: "salon_closed",
		},
		{
			name: "slot lost to a concurrent booking",
			mutate: func(r *fakeRepo, _ *CreateAppointmentInput) {
				r.createErr = httperr.ErrBusiness("slot_taken")
			},
			wantCode: "slot_taken",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			repo.addEmployee(2, "Ania")
			repo.setHours(2, monday, "09:00", "17:00")

			in := bookingInput()
			tc.mutate(repo, &in)

			_, err := newCreateUC(repo).Execute(context.Background(), in)
			if !httperr.IsBusiness(err, tc.wantCode) {
				t.Errorf("err = %v, want %s", err, tc.wantCode)
			}
			if len(repo.created) != 0 {
				t.Error("no appointment should be written on rejection")
			}
		})
	}
}
