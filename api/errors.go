package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/Domenick1991/carrental/internal/service/reservation"
	"github.com/Domenick1991/carrental/internal/service/users"
	"github.com/Domenick1991/carrental/internal/service/vehicles"
)

// statusFromError maps service error kinds to HTTP status codes. Anything
// unrecognized is treated as a storage or internal failure.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, reservation.ErrInvalidWindow),
		errors.Is(err, reservation.ErrStatusImmutable),
		errors.Is(err, vehicles.ErrVehicleProtected):
		return http.StatusBadRequest
	case errors.Is(err, reservation.ErrVehicleUnavailable),
		errors.Is(err, vehicles.ErrVehicleInUse),
		errors.Is(err, users.ErrUserHasReservations):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
