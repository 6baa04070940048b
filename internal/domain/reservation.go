package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusCreated  ReservationStatus = "CREATED"
	ReservationStatusCanceled ReservationStatus = "CANCELED"
	ReservationStatusDone     ReservationStatus = "DONE"
)

// IsTerminal reports whether the status admits no further transitions.
// CANCELED and DONE reservations never participate in availability or
// price recomputation again.
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusCanceled || s == ReservationStatusDone
}

type Reservation struct {
	ID              int64
	VehicleID       int64
	UserID          int64
	PickUpTime      time.Time
	DropOffTime     time.Time
	PickUpLocation  string
	DropOffLocation string
	Status          ReservationStatus
	TotalPriceCents int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
