package domain

import "time"

type Vehicle struct {
	ID                int64
	Model             string
	Doors             int
	Seats             int
	Luggage           int
	Transmission      string
	AirConditioning   bool
	Age               int
	PricePerHourCents int64
	FuelType          string
	BuiltIn           bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
