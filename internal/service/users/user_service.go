package users

import (
	"context"
	"errors"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/repository"
)

var ErrUserHasReservations = errors.New("user has reservations and can not be deleted")

type UserUseCase interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Remove(ctx context.Context, id int64) error
}

type UserService struct {
	repo         repository.UserRepository
	reservations repository.ReservationRepository
}

func NewUserService(repo repository.UserRepository, reservations repository.ReservationRepository) *UserService {
	return &UserService{repo: repo, reservations: reservations}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Remove(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	exists, err := s.reservations.ExistsForUser(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserHasReservations
	}

	return s.repo.DeleteByID(ctx, id)
}

var _ UserUseCase = (*UserService)(nil)
