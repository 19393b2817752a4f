package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Passenger holds the details supplied for one seat of a booking.
type Passenger struct {
	Name           string `json:"name"`
	Age            int    `json:"age"`
	PassportNumber string `json:"passport_number"`
}

type Booking struct {
	ID               string
	UserID           string
	FlightID         string
	Seats            []string
	PassengerDetails []Passenger
	Status           BookingStatus
	QRCode           string
	BookingDate      time.Time
	UpdatedAt        time.Time
}
