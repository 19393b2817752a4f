package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/scenicairways/backend/config"
	"github.com/scenicairways/backend/internal/bootstrap"
	"github.com/scenicairways/backend/internal/cache"
	"github.com/scenicairways/backend/internal/database"
	"github.com/scenicairways/backend/internal/kafka"
	"github.com/scenicairways/backend/internal/qrcode"
	"github.com/scenicairways/backend/internal/repository"
	"github.com/scenicairways/backend/internal/service/auth"
	"github.com/scenicairways/backend/internal/service/booking"
	"github.com/scenicairways/backend/internal/service/flights"
	"github.com/scenicairways/backend/internal/token"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.MigrationsDir != "" {
		if err := database.Migrate(cfg.Database.MigrationsDir, cfg.Database.URL()); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTLSecs)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	tokens := token.NewProvider(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLMinutes)*time.Minute)
	authService := auth.NewAuthService(userRepo, tokens)
	flightService := flights.NewFlightService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		userRepo,
		flightService,
		qrcode.NewGenerator(cfg.QRCode.Dir),
		redisCache,
		producer,
		cfg.Kafka.NotificationsTopic,
		booking.WithSeatHoldTTL(time.Duration(cfg.Booking.SeatHoldTTLSeconds)*time.Second),
	)

	if err := bootstrap.Run(ctx, cfg, authService, flightService, bookingService, tokens); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
