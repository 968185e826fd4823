package booking

import (
	"sort"
	"time"

	"github.com/salonbook/salon-scheduler/internal/models"
)

// Interval is a half-open time window [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (iv Interval) IsZero() bool {
	return iv.Start.IsZero() || !iv.End.After(iv.Start)
}

func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start.Before(o.End) && iv.End.After(o.Start)
}

// AtClock anchors an "HH:MM" clock string on the given day, in the day's
// location. Returns false for empty or malformed input.
func AtClock(day time.Time, hm string) (time.Time, bool) {
	if hm == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	), true
}

// WorkingWindow resolves a schedule entry to the open interval on the given
// day. The zero Interval means the employee does not work that day.
func WorkingWindow(entry *models.ScheduleEntry, day time.Time) Interval {
	if entry == nil || entry.DayOff {
		return Interval{}
	}

	start, ok := AtClock(day, entry.StartTime)
	if !ok {
		return Interval{}
	}
	end, ok := AtClock(day, entry.EndTime)
	if !ok || !end.After(start) {
		return Interval{}
	}

	return Interval{Start: start, End: end}
}

// BreakWindow resolves the entry's break to an interval on the given day,
// or the zero Interval when no break is configured.
func BreakWindow(entry *models.ScheduleEntry, day time.Time) Interval {
	if entry == nil {
		return Interval{}
	}
	start, ok := AtClock(day, entry.BreakStart)
	if !ok {
		return Interval{}
	}
	end, ok := AtClock(day, entry.BreakEnd)
	if !ok || !end.After(start) {
		return Interval{}
	}
	return Interval{Start: start, End: end}
}

// FreeIntervals subtracts the blocked intervals from the open window. The
// result is ordered, non-overlapping and clipped to the window. A block
// touching a boundary exactly (end == start) does not consume it: a slot
// may end exactly when a booking begins and start exactly when one ends.
func FreeIntervals(open Interval, blocks []Interval) []Interval {
	if open.IsZero() {
		return nil
	}

	sorted := make([]Interval, 0, len(blocks))
	for _, b := range blocks {
		if !b.IsZero() && b.Overlaps(open) {
			sorted = append(sorted, b)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var free []Interval
	cur := open.Start

	for _, b := range sorted {
		if !b.End.After(cur) {
			continue
		}
		if b.Start.After(cur) {
			free = append(free, Interval{Start: cur, End: minTime(b.Start, open.End)})
		}
		if b.End.After(cur) {
			cur = b.End
		}
		if !cur.Before(open.End) {
			return free
		}
	}

	if cur.Before(open.End) {
		free = append(free, Interval{Start: cur, End: open.End})
	}

	return free
}

// WithinWorkingHours reports whether [start, end) fits the entry's window
// on that day without touching the break.
func WithinWorkingHours(entry *models.ScheduleEntry, start, end time.Time) bool {
	window := WorkingWindow(entry, start)
	if window.IsZero() {
		return false
	}

	if start.Before(window.Start) || end.After(window.End) {
		return false
	}

	if brk := BreakWindow(entry, start); !brk.IsZero() {
		if start.Before(brk.End) && end.After(brk.Start) {
			return false
		}
	}

	return true
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
