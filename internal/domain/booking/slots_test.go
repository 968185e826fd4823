package booking

import (
	"testing"
	"time"
)

func TestEnumerateStartsFullDay(t *testing.T) {
	free := []Interval{iv(9, 0, 17, 0)}

	starts := EnumerateStarts(free, 30*time.Minute, 15*time.Minute, time.Time{})

	if len(starts) == 0 {
		t.Fatal("expected candidate starts")
	}
	if !starts[0].Equal(at(9, 0)) {
		t.Errorf("first start = %v, want 09:00", starts[0])
	}
	// Last start whose 30-minute window still fits before 17:00.
	if last := starts[len(starts)-1]; !last.Equal(at(16, 30)) {
		t.Errorf("last start = %v, want 16:30", last)
	}
	// 09:00 .. 16:30 on a 15-minute grid.
	if want := 31; len(starts) != want {
		t.Errorf("got %d starts, want %d", len(starts), want)
	}
}

func TestEnumerateStartsAroundBooking(t *testing.T) {
	// Working 09:00-17:00 with a booking 10:00-10:30.
	free := FreeIntervals(iv(9, 0, 17, 0), []Interval{iv(10, 0, 10, 30)})

	starts := EnumerateStarts(free, 30*time.Minute, 15*time.Minute, time.Time{})

	have := make(map[string]bool, len(starts))
	for _, s := range starts {
		have[s.Format("15:04")] = true
	}

	for _, blocked := range []string{"09:45", "10:00", "10:15"} {
		if have[blocked] {
			t.Errorf("start %s overlaps the booking and must not be offered", blocked)
		}
	}
	// A slot may end exactly when the booking begins and start exactly
	// when it ends.
	for _, ok := range []string{"09:30", "10:30"} {
		if !have[ok] {
			t.Errorf("start %s should be offered", ok)
		}
	}
}

func TestEnumerateStartsRespectsNotBefore(t *testing.T) {
	free := []Interval{iv(9, 0, 17, 0)}

	// 09:10 is off-grid; the first candidate snaps forward to 09:15.
	starts := EnumerateStarts(free, 30*time.Minute, 15*time.Minute, at(9, 10))
	if len(starts) == 0 {
		t.Fatal("expected candidate starts")
	}
	if !starts[0].Equal(at(9, 15)) {
		t.Errorf("first start = %v, want 09:15", starts[0])
	}

	// An on-grid cutoff is itself offered.
	starts = EnumerateStarts(free, 30*time.Minute, 15*time.Minute, at(9, 15))
	if !starts[0].Equal(at(9, 15)) {
		t.Errorf("first start = %v, want 09:15", starts[0])
	}
}

func TestEnumerateStartsTooShortInterval(t *testing.T) {
	free := []Interval{iv(9, 0, 9, 20)}

	if starts := EnumerateStarts(free, 30*time.Minute, 15*time.Minute, time.Time{}); len(starts) != 0 {
		t.Errorf("a 20-minute gap cannot host a 30-minute service, got %v", starts)
	}
}

func TestFirstStart(t *testing.T) {
	free := FreeIntervals(iv(9, 0, 17, 0), []Interval{iv(9, 0, 16, 45)})

	// Only 16:45-17:00 is left: too short for 30 minutes.
	if _, ok := FirstStart(free, 30*time.Minute, 15*time.Minute, time.Time{}); ok {
		t.Error("no start should fit the remaining 15 minutes")
	}

	if first, ok := FirstStart(free, 15*time.Minute, 15*time.Minute, time.Time{}); !ok {
		t.Error("a 15-minute service fits the remaining gap")
	} else if !first.Equal(at(16, 45)) {
		t.Errorf("first start = %v, want 16:45", first)
	}

	if _, ok := FirstStart(nil, 15*time.Minute, 15*time.Minute, time.Time{}); ok {
		t.Error("no free intervals means no start")
	}
}
