package vehicles

import (
	"context"
	"errors"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/repository"
)

var (
	// ErrVehicleProtected guards built-in vehicles against mutation.
	ErrVehicleProtected = errors.New("built-in vehicles can not be modified")

	ErrVehicleInUse = errors.New("vehicle has reservations and can not be deleted")
)

type VehicleUseCase interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	Create(ctx context.Context, input VehicleInput) (*domain.Vehicle, error)
	Update(ctx context.Context, id int64, input VehicleInput) (*domain.Vehicle, error)
	Remove(ctx context.Context, id int64) error
}

type Cache interface {
	GetVehicles(ctx context.Context) ([]domain.Vehicle, error)
	SetVehicles(ctx context.Context, vehicles []domain.Vehicle) error
	InvalidateVehicles(ctx context.Context) error
}

type VehicleInput struct {
	Model             string `json:"model"`
	Doors             int    `json:"doors"`
	Seats             int    `json:"seats"`
	Luggage           int    `json:"luggage"`
	Transmission      string `json:"transmission"`
	AirConditioning   bool   `json:"air_conditioning"`
	Age               int    `json:"age"`
	PricePerHourCents int64  `json:"price_per_hour_cents"`
	FuelType          string `json:"fuel_type"`
	BuiltIn           bool   `json:"built_in"`
}

type VehicleService struct {
	repo         repository.VehicleRepository
	reservations repository.ReservationRepository
	cache        Cache
}

func NewVehicleService(repo repository.VehicleRepository, reservations repository.ReservationRepository, cache Cache) *VehicleService {
	return &VehicleService{repo: repo, reservations: reservations, cache: cache}
}

func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetVehicles(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	vehicles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetVehicles(ctx, vehicles)
	}
	return vehicles, nil
}

func (s *VehicleService) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *VehicleService) Create(ctx context.Context, input VehicleInput) (*domain.Vehicle, error) {
	v := &domain.Vehicle{
		Model:             input.Model,
		Doors:             input.Doors,
		Seats:             input.Seats,
		Luggage:           input.Luggage,
		Transmission:      input.Transmission,
		AirConditioning:   input.AirConditioning,
		Age:               input.Age,
		PricePerHourCents: input.PricePerHourCents,
		FuelType:          input.FuelType,
		BuiltIn:           input.BuiltIn,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return v, nil
}

func (s *VehicleService) Update(ctx context.Context, id int64, input VehicleInput) (*domain.Vehicle, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.BuiltIn {
		return nil, ErrVehicleProtected
	}

	v.Model = input.Model
	v.Doors = input.Doors
	v.Seats = input.Seats
	v.Luggage = input.Luggage
	v.Transmission = input.Transmission
	v.AirConditioning = input.AirConditioning
	v.Age = input.Age
	v.PricePerHourCents = input.PricePerHourCents
	v.FuelType = input.FuelType
	v.BuiltIn = input.BuiltIn

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return v, nil
}

func (s *VehicleService) Remove(ctx context.Context, id int64) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v.BuiltIn {
		return ErrVehicleProtected
	}

	// Reservation history, terminal or not, pins the vehicle.
	exists, err := s.reservations.ExistsForVehicle(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return ErrVehicleInUse
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *VehicleService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateVehicles(ctx)
	}
}

var _ VehicleUseCase = (*VehicleService)(nil)
