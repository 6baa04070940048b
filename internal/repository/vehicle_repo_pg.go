package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	Update(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	DeleteByID(ctx context.Context, id int64) error
}

const vehicleColumns = `id, model, doors, seats, luggage, transmission, air_conditioning, age, price_per_hour_cents, fuel_type, built_in, created_at, updated_at`

type PGVehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) VehicleRepository {
	return &PGVehicleRepository{db: db}
}

func (r *PGVehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	return r.db.QueryRow(ctx, `INSERT INTO vehicles (model, doors, seats, luggage, transmission, air_conditioning, age, price_per_hour_cents, fuel_type, built_in)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		v.Model, v.Doors, v.Seats, v.Luggage, v.Transmission, v.AirConditioning, v.Age, v.PricePerHourCents, v.FuelType, v.BuiltIn).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

func (r *PGVehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	row := r.db.QueryRow(ctx, `UPDATE vehicles SET model=$1, doors=$2, seats=$3, luggage=$4, transmission=$5, air_conditioning=$6, age=$7, price_per_hour_cents=$8, fuel_type=$9, built_in=$10, updated_at=now()
		WHERE id=$11 RETURNING updated_at`,
		v.Model, v.Doors, v.Seats, v.Luggage, v.Transmission, v.AirConditioning, v.Age, v.PricePerHourCents, v.FuelType, v.BuiltIn, v.ID)
	if err := row.Scan(&v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("vehicle %d: %w", v.ID, ErrNotFound)
		}
		return err
	}
	return nil
}

func (r *PGVehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	row := r.db.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id=$1`, id)
	var v domain.Vehicle
	if err := row.Scan(&v.ID, &v.Model, &v.Doors, &v.Seats, &v.Luggage, &v.Transmission, &v.AirConditioning, &v.Age, &v.PricePerHourCents, &v.FuelType, &v.BuiltIn, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("vehicle %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &v, nil
}

func (r *PGVehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := r.db.Query(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0)
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.Model, &v.Doors, &v.Seats, &v.Luggage, &v.Transmission, &v.AirConditioning, &v.Age, &v.PricePerHourCents, &v.FuelType, &v.BuiltIn, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *PGVehicleRepository) DeleteByID(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %d: %w", id, ErrNotFound)
	}
	return nil
}

var _ VehicleRepository = (*PGVehicleRepository)(nil)
