package availability

import (
	"iter"
	"time"
)

// Slots generates the bookable slot intervals for one working window,
// normally the organizer's working hours for a single local day resolved to
// UTC. The sequence is lazy, finite and restartable.
//
// If the window end is not after its start the range crossed local midnight;
// the end is pushed out by 24h so an evening shift like 22:00-02:00 spans into
// the next day.
//
// Slots are duration long and spaced gap apart (buffer before + buffer
// after). A slot starting before now+minNotice is not emitted, but it still
// advances the cursor: skipping never compresses the schedule.
func Slots(window Interval, duration, gap, minNotice time.Duration, now time.Time) iter.Seq[Interval] {
	return func(yield func(Interval) bool) {
		if duration <= 0 {
			return
		}
		end := window.End
		if !end.After(window.Start) {
			end = end.Add(24 * time.Hour)
		}
		earliest := now.Add(minNotice)
		for cur := window.Start; !cur.Add(duration).After(end); cur = cur.Add(duration + gap) {
			if cur.Before(earliest) {
				continue
			}
			if !yield(Interval{Start: cur, End: cur.Add(duration)}) {
				return
			}
		}
	}
}

// FitsSlot reports whether the candidate is exactly contained in one of the
// generated slots. Lying inside working hours without aligning to a slot does
// not count. Slots are emitted in order, so the scan stops once they start
// past the candidate.
func FitsSlot(slots iter.Seq[Interval], candidate Interval) bool {
	for slot := range slots {
		if slot.Start.After(candidate.Start) {
			return false
		}
		if slot.Contains(candidate) {
			return true
		}
	}
	return false
}
