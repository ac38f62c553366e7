package availability

import "time"

// CheckBlackouts tests the candidate against every blackout date, each of
// which blocks the organizer's entire local day. The first hit is returned as
// a *BlackoutConflictError; an empty list always passes.
func CheckBlackouts(dates []Date, loc *time.Location, candidate Interval, trace Trace) error {
	for _, d := range dates {
		bounds := d.DayBounds(loc)
		trace.emit("blackout check", "date", d.String(), "bounds", bounds.String())
		if bounds.Overlaps(candidate) {
			return &BlackoutConflictError{Date: d}
		}
	}
	return nil
}
