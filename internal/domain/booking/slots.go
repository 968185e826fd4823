package booking

import "time"

// EnumerateStarts lists candidate start times inside the free intervals.
// Starts step on the granularity grid anchored at each interval's start;
// the last candidate is the one whose window still ends within the
// interval (start + total <= interval end). Candidates before notBefore
// are dropped so that past slots are never offered.
func EnumerateStarts(
	free []Interval,
	total time.Duration,
	step time.Duration,
	notBefore time.Time,
) []time.Time {

	var starts []time.Time

	for _, iv := range free {
		cur := iv.Start

		if cur.Before(notBefore) {
			// first grid point at or after notBefore
			offset := notBefore.Sub(cur)
			steps := offset / step
			if offset%step != 0 {
				steps++
			}
			cur = cur.Add(steps * step)
		}

		for !cur.Add(total).After(iv.End) {
			starts = append(starts, cur)
			cur = cur.Add(step)
		}
	}

	return starts
}

// FirstStart is the existence-check form of EnumerateStarts, used by the
// calendar day filter to classify a day without enumerating every slot.
func FirstStart(
	free []Interval,
	total time.Duration,
	step time.Duration,
	notBefore time.Time,
) (time.Time, bool) {

	for _, iv := range free {
		cur := iv.Start

		if cur.Before(notBefore) {
			offset := notBefore.Sub(cur)
			steps := offset / step
			if offset%step != 0 {
				steps++
			}
			cur = cur.Add(steps * step)
		}

		if !cur.Add(total).After(iv.End) {
			return cur, true
		}
	}

	return time.Time{}, false
}
