package flights

import (
	"context"

	"github.com/scenicairways/backend/internal/domain"
	"github.com/scenicairways/backend/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	UpdateSeatAvailability(ctx context.Context, flightID string, seats []string, release bool) error
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateSeatAvailability is the single seat-inventory operation. release=false
// marks the seats unavailable, release=true restores them. The underlying
// update is atomic per flight, so two overlapping reservations of the same
// seat cannot both succeed.
func (s *FlightService) UpdateSeatAvailability(ctx context.Context, flightID string, seats []string, release bool) error {
	var err error
	if release {
		err = s.repo.ReleaseSeats(ctx, flightID, seats)
	} else {
		err = s.repo.ReserveSeats(ctx, flightID, seats)
	}
	if err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return nil
}

var _ FlightUseCase = (*FlightService)(nil)
