package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UseCase interface {
	Create(ctx context.Context, input CreateInput) (*domain.Reservation, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*domain.Reservation, error)
	Remove(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error)
	Conflicts(ctx context.Context, vehicleID int64, w Window, excludeID int64) ([]domain.Reservation, error)
	CheckAvailability(ctx context.Context, vehicleID int64, w Window) (bool, int64, error)
	CompleteOverdue(ctx context.Context) ([]domain.Reservation, error)
}

// Cache provides the per-vehicle mutual exclusion held across the
// conflict-check-then-write sequence. A nil Cache disables locking, which
// is only safe for a single instance.
type Cache interface {
	AcquireVehicleLock(ctx context.Context, vehicleID int64, ttl time.Duration) (bool, error)
	ReleaseVehicleLock(ctx context.Context, vehicleID int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Service struct {
	reservations       repository.ReservationRepository
	vehicles           repository.VehicleRepository
	cache              Cache
	producer           Producer
	log                *zap.Logger
	reservationsTopic  string
	notificationsTopic string
	lockTTL            time.Duration
	now                func() time.Time
}

type CreateInput struct {
	VehicleID       int64     `json:"vehicle_id"`
	UserID          int64     `json:"user_id"`
	PickUpTime      time.Time `json:"pick_up_time"`
	DropOffTime     time.Time `json:"drop_off_time"`
	PickUpLocation  string    `json:"pick_up_location"`
	DropOffLocation string    `json:"drop_off_location"`
}

// UpdateInput carries the full replacement state of a reservation. The
// vehicle may differ from the one the reservation was created with.
type UpdateInput struct {
	VehicleID       int64                    `json:"vehicle_id"`
	PickUpTime      time.Time                `json:"pick_up_time"`
	DropOffTime     time.Time                `json:"drop_off_time"`
	PickUpLocation  string                   `json:"pick_up_location"`
	DropOffLocation string                   `json:"drop_off_location"`
	Status          domain.ReservationStatus `json:"status"`
}

type ServiceOption func(*Service)

func WithNotificationsTopic(topic string) ServiceOption {
	return func(s *Service) {
		s.notificationsTopic = topic
	}
}

func WithLogger(log *zap.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(
	reservations repository.ReservationRepository,
	vehicles repository.VehicleRepository,
	cache Cache,
	producer Producer,
	reservationsTopic string,
	lockTTL time.Duration,
	opts ...ServiceOption,
) *Service {
	service := &Service{
		reservations:      reservations,
		vehicles:          vehicles,
		cache:             cache,
		producer:          producer,
		log:               zap.NewNop(),
		reservationsTopic: reservationsTopic,
		lockTTL:           lockTTL,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Reservation, error) {
	vehicle, err := s.vehicles.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}

	w := Window{PickUp: input.PickUpTime, DropOff: input.DropOffTime}
	if err := w.Validate(s.now()); err != nil {
		return nil, err
	}

	unlock, err := s.lockVehicle(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	conflicts, err := s.Conflicts(ctx, vehicle.ID, w, 0)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, ErrVehicleUnavailable
	}

	res := &domain.Reservation{
		VehicleID:       vehicle.ID,
		UserID:          input.UserID,
		PickUpTime:      w.PickUp,
		DropOffTime:     w.DropOff,
		PickUpLocation:  input.PickUpLocation,
		DropOffLocation: input.DropOffLocation,
		Status:          domain.ReservationStatusCreated,
		TotalPriceCents: TotalPriceCents(w, vehicle.PricePerHourCents),
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}

	s.publish(ctx, "reservation_created", res)
	return res, nil
}

func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (*domain.Reservation, error) {
	switch input.Status {
	case domain.ReservationStatusCreated, domain.ReservationStatusCanceled, domain.ReservationStatusDone:
	default:
		return nil, fmt.Errorf("unknown reservation status %q", input.Status)
	}

	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status.IsTerminal() {
		return nil, ErrStatusImmutable
	}

	if input.Status == domain.ReservationStatusCreated {
		vehicle, err := s.vehicles.GetByID(ctx, input.VehicleID)
		if err != nil {
			return nil, err
		}

		w := Window{PickUp: input.PickUpTime, DropOff: input.DropOffTime}
		if err := w.Validate(s.now()); err != nil {
			return nil, err
		}

		unlock, err := s.lockVehicle(ctx, vehicle.ID)
		if err != nil {
			return nil, err
		}
		defer unlock()

		// The reservation may overlap with itself during an update.
		conflicts, err := s.Conflicts(ctx, vehicle.ID, w, res.ID)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			return nil, ErrVehicleUnavailable
		}

		res.VehicleID = vehicle.ID
		res.PickUpTime = w.PickUp
		res.DropOffTime = w.DropOff
		res.TotalPriceCents = TotalPriceCents(w, vehicle.PricePerHourCents)
	}

	// A cancel/complete keeps the window and price it was booked with.
	res.PickUpLocation = input.PickUpLocation
	res.DropOffLocation = input.DropOffLocation
	res.Status = input.Status

	if err := s.reservations.Update(ctx, res); err != nil {
		return nil, err
	}

	s.publish(ctx, "reservation_updated", res)
	return res, nil
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reservations.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, "reservation_deleted", res)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.reservations.GetByID(ctx, id)
}

func (s *Service) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Reservation, error) {
	return s.reservations.GetByIDAndUser(ctx, id, userID)
}

func (s *Service) List(ctx context.Context) ([]domain.Reservation, error) {
	return s.reservations.List(ctx)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	return s.reservations.ListByUser(ctx, userID)
}

// Conflicts returns the non-terminal reservations the window collides
// with, optionally excluding one reservation id. An empty result means
// the vehicle is free.
func (s *Service) Conflicts(ctx context.Context, vehicleID int64, w Window, excludeID int64) ([]domain.Reservation, error) {
	if w.PickUp.After(w.DropOff) {
		return nil, ErrInvalidWindow
	}
	return s.reservations.FindConflicting(ctx, vehicleID, w.PickUp, w.DropOff, excludeID)
}

// CheckAvailability reports whether the vehicle is free for the window
// and quotes the total price for it.
func (s *Service) CheckAvailability(ctx context.Context, vehicleID int64, w Window) (bool, int64, error) {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return false, 0, err
	}
	conflicts, err := s.Conflicts(ctx, vehicle.ID, w, 0)
	if err != nil {
		return false, 0, err
	}
	return len(conflicts) == 0, TotalPriceCents(w, vehicle.PricePerHourCents), nil
}

// CompleteOverdue marks CREATED reservations whose drop-off time has
// passed as DONE. Called by the worker sweep.
func (s *Service) CompleteOverdue(ctx context.Context) ([]domain.Reservation, error) {
	completed, err := s.reservations.MarkDoneBefore(ctx, s.now())
	if err != nil {
		return nil, err
	}
	for i := range completed {
		s.publish(ctx, "reservation_completed", &completed[i])
	}
	return completed, nil
}

func (s *Service) lockVehicle(ctx context.Context, vehicleID int64) (func(), error) {
	if s.cache == nil {
		return func() {}, nil
	}
	ok, err := s.cache.AcquireVehicleLock(ctx, vehicleID, s.lockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrVehicleUnavailable
	}
	return func() {
		if err := s.cache.ReleaseVehicleLock(ctx, vehicleID); err != nil {
			s.log.Warn("release vehicle lock", zap.Int64("vehicle_id", vehicleID), zap.Error(err))
		}
	}, nil
}

func (s *Service) publish(ctx context.Context, eventType string, res *domain.Reservation) {
	if s.producer == nil || s.reservationsTopic == "" {
		return
	}
	event := kafka.ReservationEvent{
		Type:            eventType,
		EventID:         uuid.NewString(),
		ReservationID:   res.ID,
		VehicleID:       res.VehicleID,
		UserID:          res.UserID,
		Status:          string(res.Status),
		PickUpTime:      res.PickUpTime,
		DropOffTime:     res.DropOffTime,
		TotalPriceCents: res.TotalPriceCents,
	}
	key := fmt.Sprintf("%d", res.ID)
	if err := s.producer.Publish(ctx, s.reservationsTopic, key, event); err != nil {
		s.log.Warn("publish reservation event", zap.String("type", eventType), zap.Int64("reservation_id", res.ID), zap.Error(err))
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			s.log.Warn("publish notification event", zap.String("type", eventType), zap.Int64("reservation_id", res.ID), zap.Error(err))
		}
	}
}

var _ UseCase = (*Service)(nil)
