package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scenicairways/backend/internal/domain"
	"github.com/scenicairways/backend/internal/kafka"
	"github.com/scenicairways/backend/internal/repository"
)

type BookingUseCase interface {
	ListAll(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id string) (bool, error)
}

// Inventory is the seat-availability operation exposed by the flight
// service. release=false marks seats unavailable, release=true restores.
type Inventory interface {
	UpdateSeatAvailability(ctx context.Context, flightID string, seats []string, release bool) error
}

// QRGenerator renders a booking payload into a scannable image and
// returns its storage path.
type QRGenerator interface {
	Generate(payload, bookingID string) (string, error)
}

// SeatHolder serializes concurrent creates on the same seats across the
// window between the inventory decrement and the booking insert.
type SeatHolder interface {
	AcquireSeatHolds(ctx context.Context, flightID string, seats []string, ttl time.Duration) (bool, error)
	ReleaseSeatHolds(ctx context.Context, flightID string, seats []string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	users              repository.UserRepository
	inventory          Inventory
	qr                 QRGenerator
	holds              SeatHolder
	producer           Producer
	notificationsTopic string
	holdTTL            time.Duration
}

type CreateBookingInput struct {
	UserID           string             `json:"user_id"`
	FlightID         string             `json:"flight_id"`
	Seats            []string           `json:"seats"`
	PassengerDetails []domain.Passenger `json:"passenger_details"`
}

type BookingServiceOption func(*BookingService)

func WithSeatHoldTTL(ttl time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.holdTTL = ttl
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	users repository.UserRepository,
	inventory Inventory,
	qr QRGenerator,
	holds SeatHolder,
	producer Producer,
	notificationsTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:           bookings,
		users:              users,
		inventory:          inventory,
		qr:                 qr,
		holds:              holds,
		producer:           producer,
		notificationsTopic: notificationsTopic,
		holdTTL:            30 * time.Second,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListAll(ctx)
}

func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// CreateBooking runs the fixed creation sequence: assign id, stamp dates,
// take the seats out of the flight's availability, render the QR code,
// persist, notify. There is no compensation after the inventory decrement:
// a later persistence failure leaves the seats unavailable.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.UserID == "" {
		return nil, errors.New("user id is required")
	}
	if input.FlightID == "" {
		return nil, errors.New("flight id is required")
	}
	if len(input.Seats) == 0 {
		return nil, errors.New("at least one seat is required")
	}
	if len(input.PassengerDetails) == 0 {
		return nil, errors.New("passenger details are required")
	}

	now := time.Now()
	booking := &domain.Booking{
		ID:               newBookingID(),
		UserID:           input.UserID,
		FlightID:         input.FlightID,
		Seats:            input.Seats,
		PassengerDetails: input.PassengerDetails,
		Status:           domain.BookingStatusPending,
		BookingDate:      now,
		UpdatedAt:        now,
	}

	held := false
	if s.holds != nil {
		ok, err := s.holds.AcquireSeatHolds(ctx, booking.FlightID, booking.Seats, s.holdTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrSeatUnavailable
		}
		held = true
	}

	if err := s.inventory.UpdateSeatAvailability(ctx, booking.FlightID, booking.Seats, false); err != nil {
		if held {
			_ = s.holds.ReleaseSeatHolds(ctx, booking.FlightID, booking.Seats)
		}
		return nil, err
	}

	// The inventory decrement is never compensated from here on; only
	// the redis holds are cleaned up on failure.
	payload := qrPayload(booking)
	qrPath, err := s.qr.Generate(payload, booking.ID)
	if err != nil {
		if held {
			_ = s.holds.ReleaseSeatHolds(ctx, booking.FlightID, booking.Seats)
		}
		return nil, err
	}
	booking.QRCode = qrPath

	if err := s.bookings.Save(ctx, booking); err != nil {
		if held {
			_ = s.holds.ReleaseSeatHolds(ctx, booking.FlightID, booking.Seats)
		}
		return nil, err
	}

	if held {
		_ = s.holds.ReleaseSeatHolds(ctx, booking.FlightID, booking.Seats)
	}
	s.notify(ctx, "booking_created", booking)
	return booking, nil
}

func (s *BookingService) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	booking.Status = status
	booking.UpdatedAt = time.Now()
	if err := s.bookings.Save(ctx, booking); err != nil {
		return nil, err
	}

	s.notify(ctx, "booking_status_updated", booking)
	return booking, nil
}

// CancelBooking releases the booking's seats before persisting the status
// change, the inverse ordering of CreateBooking. A missing booking is a
// false return, not an error, and performs no writes.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (bool, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return false, nil
		}
		return false, err
	}

	booking.Status = domain.BookingStatusCancelled
	booking.UpdatedAt = time.Now()

	if err := s.inventory.UpdateSeatAvailability(ctx, booking.FlightID, booking.Seats, true); err != nil {
		return false, err
	}
	if err := s.bookings.Save(ctx, booking); err != nil {
		return false, err
	}

	s.notify(ctx, "booking_cancelled", booking)
	return true, nil
}

func (s *BookingService) notify(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.notificationsTopic == "" {
		return
	}
	passenger := ""
	if len(booking.PassengerDetails) > 0 {
		passenger = booking.PassengerDetails[0].Name
	}
	event := kafka.NotificationEvent{
		Type:      eventType,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		FlightID:  booking.FlightID,
		Seats:     booking.Seats,
		Passenger: passenger,
		Status:    string(booking.Status),
		QRCode:    booking.QRCode,
		CreatedAt: time.Now(),
	}
	if s.users != nil {
		if user, err := s.users.GetByID(ctx, booking.UserID); err == nil {
			event.Email = user.Email
		}
	}
	if err := s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %s: %v", eventType, booking.ID, err)
	}
}

// newBookingID builds ids like SA1735689600000A1B2: fixed prefix, unix
// milliseconds, then a 4-character uppercase slice of a random token.
func newBookingID() string {
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return "SA" + strconv.FormatInt(time.Now().UnixMilli(), 10) + suffix
}

func qrPayload(booking *domain.Booking) string {
	return fmt.Sprintf("BOOKING:%s|FLIGHT:%s|SEATS:%s|PASSENGER:%s",
		booking.ID, booking.FlightID, strings.Join(booking.Seats, ","), booking.PassengerDetails[0].Name)
}

var _ BookingUseCase = (*BookingService)(nil)
