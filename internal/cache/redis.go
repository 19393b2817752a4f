package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scenicairways/backend/config"
	"github.com/scenicairways/backend/internal/domain"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey()).Err()
}

// AcquireSeatHolds takes a short-lived SetNX hold on every seat before the
// inventory is touched. If any seat is already held the holds taken so far
// are dropped and false is returned.
func (c *RedisCache) AcquireSeatHolds(ctx context.Context, flightID string, seats []string, ttl time.Duration) (bool, error) {
	held := make([]string, 0, len(seats))
	for _, seat := range seats {
		ok, err := c.client.SetNX(ctx, seatHoldKey(flightID, seat), "held", ttl).Result()
		if err != nil || !ok {
			for _, h := range held {
				_ = c.client.Del(ctx, seatHoldKey(flightID, h)).Err()
			}
			return false, err
		}
		held = append(held, seat)
	}
	return true, nil
}

func (c *RedisCache) ReleaseSeatHolds(ctx context.Context, flightID string, seats []string) error {
	keys := make([]string, 0, len(seats))
	for _, seat := range seats {
		keys = append(keys, seatHoldKey(flightID, seat))
	}
	return c.client.Del(ctx, keys...).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func seatHoldKey(flightID, seat string) string {
	return fmt.Sprintf("hold:flight:%s:seat:%s", flightID, seat)
}
