package reservation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWindow is the base kind for every window validation
	// failure; match it with errors.Is.
	ErrInvalidWindow = errors.New("invalid reservation window")

	ErrPastPickUp          = fmt.Errorf("%w: pick-up time is in the past", ErrInvalidWindow)
	ErrNonPositiveDuration = fmt.Errorf("%w: pick-up time must be strictly before drop-off time", ErrInvalidWindow)

	// ErrVehicleUnavailable covers both a window conflict with an existing
	// reservation and a lost race for the per-vehicle lock.
	ErrVehicleUnavailable = errors.New("vehicle is not available for the requested window")

	ErrStatusImmutable = errors.New("canceled or done reservations can not be changed")
)
