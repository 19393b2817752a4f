package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scenicairways/backend/internal/domain"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	ReserveSeats(ctx context.Context, flightID string, seats []string) error
	ReleaseSeats(ctx context.Context, flightID string, seats []string) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, from_airport, to_airport, departure_time, arrival_time, seats, available_seats, price_cents, created_at, updated_at`

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.FromAirport, &f.ToAirport, &f.DepartureTime, &f.ArrivalTime, &f.Seats, &f.AvailableSeats, &f.PriceCents, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FromAirport, &f.ToAirport, &f.DepartureTime, &f.ArrivalTime, &f.Seats, &f.AvailableSeats, &f.PriceCents, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

// ReserveSeats removes the given seats from the flight's availability in a
// single statement. The WHERE clause only matches when every requested seat
// is still available, so check-and-remove is atomic at the store.
func (r *PGFlightRepository) ReserveSeats(ctx context.Context, flightID string, seats []string) error {
	res, err := r.db.Exec(ctx, `UPDATE flights
		SET available_seats = (SELECT COALESCE(array_agg(s ORDER BY s), '{}') FROM unnest(available_seats) s WHERE s <> ALL($2)),
		    updated_at = now()
		WHERE id = $1 AND available_seats @> $2`, flightID, seats)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, flightID); err != nil {
			return err
		}
		return domain.ErrSeatUnavailable
	}
	return nil
}

// ReleaseSeats puts the seats back, deduplicated and clamped to the
// flight's total seat map so availability stays a subset of it.
func (r *PGFlightRepository) ReleaseSeats(ctx context.Context, flightID string, seats []string) error {
	res, err := r.db.Exec(ctx, `UPDATE flights
		SET available_seats = (SELECT COALESCE(array_agg(DISTINCT s ORDER BY s), '{}') FROM unnest(available_seats || $2) s WHERE s = ANY(seats)),
		    updated_at = now()
		WHERE id = $1`, flightID, seats)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
