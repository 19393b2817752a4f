package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scenicairways/backend/internal/domain"
)

type BookingRepository interface {
	Save(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, user_id, flight_id, seats, passenger_details, status, qr_code, booking_date, updated_at`

// Save upserts the booking. Creation and status updates share the same
// write path, keyed by the service-generated booking id.
func (r *PGBookingRepository) Save(ctx context.Context, booking *domain.Booking) error {
	passengers, err := json.Marshal(booking.PassengerDetails)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO bookings (id, user_id, flight_id, seats, passenger_details, status, qr_code, booking_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, qr_code = EXCLUDED.qr_code, updated_at = EXCLUDED.updated_at`,
		booking.ID, booking.UserID, booking.FlightID, booking.Seats, passengers, booking.Status, booking.QRCode, booking.BookingDate, booking.UpdatedAt)
	return err
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY booking_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY booking_date`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var passengers []byte
	if err := row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.Seats, &passengers, &b.Status, &b.QRCode, &b.BookingDate, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(passengers, &b.PassengerDetails); err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
