package booking

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/salonbook/salon-scheduler/internal/cache"
	"github.com/salonbook/salon-scheduler/internal/httperr"
)

func TestAvailableDaysMondaysOnly(t *testing.T) {
	repo := newFakeRepo()
	repo.addEmployee(2, "Ania")
	repo.setHours(2, monday, "09:00", "17:00")

	uc := NewAvailableDays(repo, cache.New(""), 15)

	days, err := uc.Execute(context.Background(), 1, 10, 0, 2030, time.April)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{"2030-04-01", "2030-04-08", "2030-04-15", "2030-04-22", "2030-04-29"}
	if !reflect.DeepEqual(days, want) {
		t.Errorf("days = %v, want %v", days, want)
	}
}

func TestAvailableDaysSkipsHolidayAndVacation(t *testing.T) {
	repo := newFakeRepo()
	repo.addEmployee(2, "Ania")
	repo.setHours(2, monday, "09:00", "17:00")
	repo.holidays["2030-04-08"] = true
	repo.addVacation(2, "2030-04-15")

	uc := NewAvailableDays(repo, cache.New(""), 15)

	days, err := uc.Execute(context.Background(), 1, 10, 0, 2030, time.April)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{"2030-04-01", "2030-04-22", "2030-04-29"}
	if !reflect.DeepEqual(days, want) {
		t.Errorf("days = %v, want %v", days, want)
	}
}

func TestAvailableDaysFullyBookedDayExcluded(t *testing.T) {
	repo := newFakeRepo()
	repo.addEmployee(2, "Ania")
	repo.setHours(2, monday, "09:00", "10:00")

	day := time.Date(2030, 4, 8, 0, 0, 0, 0, repo.salonLocation())
	repo.addAppointment(2, day.Add(9*time.Hour), day.Add(10*time.Hour), "booked")

	uc := NewAvailableDays(repo, cache.New(""), 15)

	days, err := uc.Execute(context.Background(), 1, 10, 0, 2030, time.April)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	for _, d := range days {
		if d == "2030-04-08" {
			t.Error("a fully booked day must not be listed as available")
		}
	}
}

func TestAvailableDaysPastMonthEmpty(t *testing.T) {
	repo := newFakeRepo()
	repo.addEmployee(2, "Ania")
	repo.setHours(2, monday, "09:00", "17:00")

	uc := NewAvailableDays(repo, cache.New(""), 15)

	days, err := uc.Execute(context.Background(), 1, 10, 0, 2020, time.April)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("a month entirely in the past has no available days, got %v", days)
	}
}

func TestAvailableDaysSecondEmployeeWidens(t *testing.T) {
	repo := newFakeRepo()
	repo.addEmployee(2, "Ania")
	repo.addEmployee(3, "Marta")
	repo.setHours(2, monday, "09:00", "17:00")
	repo.setHours(3, 2, "09:00", "17:00") // Tuesdays

	uc := NewAvailableDays(repo, cache.New(""), 15)

	days, err := uc.Execute(context.Background(), 1, 10, 0, 2030, time.April)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	// 5 Mondays + 5 Tuesdays in April 2030.
	if len(days) != 10 {
		t.Errorf("got %d days, want 10: %v", len(days), days)
	}

	// Narrowed to Marta only her Tuesdays remain.
	days, err = uc.Execute(context.Background(), 1, 10, 3, 2030, time.April)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(days) != 5 {
		t.Errorf("got %d days for Marta, want 5: %v", len(days), days)
	}
}

func TestAvailableDaysUnknownService(t *testing.T) {
	repo := newFakeRepo()
	repo.addEmployee(2, "Ania")

	uc := NewAvailableDays(repo, cache.New(""), 15)

	_, err := uc.Execute(context.Background(), 1, 999, 0, 2030, time.April)
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Errorf("err = %v, want service_not_found", err)
	}
}
