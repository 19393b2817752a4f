package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/scenicairways/backend/api"
	"github.com/scenicairways/backend/config"
	"github.com/scenicairways/backend/internal/service/auth"
	"github.com/scenicairways/backend/internal/service/booking"
	"github.com/scenicairways/backend/internal/service/flights"
	"github.com/scenicairways/backend/internal/token"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(
	ctx context.Context,
	cfg *config.Config,
	authSvc auth.AuthUseCase,
	flightSvc flights.FlightUseCase,
	bookingSvc booking.BookingUseCase,
	tokens *token.Provider,
) error {
	engine := gin.Default()

	api.NewAuthHandler(authSvc).Register(engine.Group("/auth"))
	api.NewFlightHandler(flightSvc).Register(engine.Group("/flights"))

	bookingsGroup := engine.Group("/bookings")
	bookingsGroup.Use(api.AuthRequired(tokens))
	api.NewBookingHandler(bookingSvc).Register(bookingsGroup)

	if cfg.HTTP.SwaggerDir != "" {
		engine.StaticFS("/swagger-spec", http.Dir(cfg.HTTP.SwaggerDir))
		engine.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger-spec/swagger.json"),
		)))
	}

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
