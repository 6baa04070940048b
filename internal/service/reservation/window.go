package reservation

import "time"

// Window is a pick-up/drop-off timestamp pair defining the interval a
// reservation occupies.
type Window struct {
	PickUp  time.Time
	DropOff time.Time
}

// Validate checks the window against the reference instant. A pick-up in
// the past fails with ErrPastPickUp; a pick-up at or after the drop-off
// fails with ErrNonPositiveDuration (equal times are invalid, not a
// zero-length reservation). Pure function, no side effects.
func (w Window) Validate(now time.Time) error {
	if w.PickUp.Before(now) {
		return ErrPastPickUp
	}
	if !w.PickUp.Before(w.DropOff) {
		return ErrNonPositiveDuration
	}
	return nil
}

// Minutes returns the whole minutes between pick-up and drop-off;
// leftover seconds are truncated.
func (w Window) Minutes() int64 {
	return int64(w.DropOff.Sub(w.PickUp) / time.Minute)
}
