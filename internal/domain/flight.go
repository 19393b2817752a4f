package domain

import "time"

type Flight struct {
	ID             string
	FromAirport    string
	ToAirport      string
	DepartureTime  time.Time
	ArrivalTime    time.Time
	Seats          []string
	AvailableSeats []string
	PriceCents     int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
