package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	Update(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByIDAndUser(ctx context.Context, id, userID int64) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error)
	FindConflicting(ctx context.Context, vehicleID int64, pickUp, dropOff time.Time, excludeID int64) ([]domain.Reservation, error)
	ExistsForVehicle(ctx context.Context, vehicleID int64) (bool, error)
	ExistsForUser(ctx context.Context, userID int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
	MarkDoneBefore(ctx context.Context, deadline time.Time) ([]domain.Reservation, error)
}

const reservationColumns = `id, vehicle_id, user_id, pick_up_time, drop_off_time, pick_up_location, drop_off_location, status, total_price_cents, created_at, updated_at`

type PGReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) ReservationRepository {
	return &PGReservationRepository{db: db}
}

func (r *PGReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	return r.db.QueryRow(ctx, `INSERT INTO reservations (vehicle_id, user_id, pick_up_time, drop_off_time, pick_up_location, drop_off_location, status, total_price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		res.VehicleID, res.UserID, res.PickUpTime, res.DropOffTime, res.PickUpLocation, res.DropOffLocation, res.Status, res.TotalPriceCents).
		Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

func (r *PGReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	row := r.db.QueryRow(ctx, `UPDATE reservations SET vehicle_id=$1, user_id=$2, pick_up_time=$3, drop_off_time=$4, pick_up_location=$5, drop_off_location=$6, status=$7, total_price_cents=$8, updated_at=now()
		WHERE id=$9 RETURNING updated_at`,
		res.VehicleID, res.UserID, res.PickUpTime, res.DropOffTime, res.PickUpLocation, res.DropOffLocation, res.Status, res.TotalPriceCents, res.ID)
	if err := row.Scan(&res.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("reservation %d: %w", res.ID, ErrNotFound)
		}
		return err
	}
	return nil
}

func (r *PGReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id=$1`, id)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return res, nil
}

func (r *PGReservationRepository) GetByIDAndUser(ctx context.Context, id, userID int64) (*domain.Reservation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id=$1 AND user_id=$2`, id, userID)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return res, nil
}

func (r *PGReservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reservationColumns+` FROM reservations ORDER BY pick_up_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *PGReservationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE user_id=$1 ORDER BY pick_up_time`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

// FindConflicting returns the non-terminal reservations of a vehicle whose
// windows overlap the requested one. BETWEEN is inclusive on both ends, so
// two reservations sharing an exact boundary instant count as a conflict.
// excludeID (0 = none) lets an update tolerate overlap with itself.
func (r *PGReservationRepository) FindConflicting(ctx context.Context, vehicleID int64, pickUp, dropOff time.Time, excludeID int64) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reservationColumns+` FROM reservations
		WHERE vehicle_id=$1
		AND status NOT IN ($4, $5)
		AND ($6 = 0 OR id <> $6)
		AND ($2 BETWEEN pick_up_time AND drop_off_time
			OR $3 BETWEEN pick_up_time AND drop_off_time
			OR (pick_up_time BETWEEN $2 AND $3 AND drop_off_time BETWEEN $2 AND $3))`,
		vehicleID, pickUp, dropOff, domain.ReservationStatusCanceled, domain.ReservationStatusDone, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *PGReservationRepository) ExistsForVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE vehicle_id=$1)`, vehicleID).Scan(&exists)
	return exists, err
}

func (r *PGReservationRepository) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE user_id=$1)`, userID).Scan(&exists)
	return exists, err
}

func (r *PGReservationRepository) DeleteByID(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	return nil
}

// MarkDoneBefore completes CREATED reservations whose drop-off time has
// already passed and returns them.
func (r *PGReservationRepository) MarkDoneBefore(ctx context.Context, deadline time.Time) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `UPDATE reservations SET status=$1, updated_at=now()
		WHERE status=$2 AND drop_off_time <= $3
		RETURNING `+reservationColumns,
		domain.ReservationStatusDone, domain.ReservationStatusCreated, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := row.Scan(&res.ID, &res.VehicleID, &res.UserID, &res.PickUpTime, &res.DropOffTime, &res.PickUpLocation, &res.DropOffLocation, &res.Status, &res.TotalPriceCents, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, err
	}
	return &res, nil
}

func collectReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
