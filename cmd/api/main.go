package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"apsny_travel/internal/adapters/bookingapi"
	"apsny_travel/internal/adapters/catalogapi"
	"apsny_travel/internal/adapters/fixtures"
	server "apsny_travel/internal/adapters/http_server"
	"apsny_travel/internal/adapters/observability"
	redisad "apsny_travel/internal/adapters/redis"
	"apsny_travel/internal/app"
	"apsny_travel/internal/domain"
	"apsny_travel/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// catalog strategy is fixed at startup
	var src domain.TourSource
	if cfg.MockMode() {
		src = fixtures.New(fixtures.WithLatency(cfg.MockLatencyMin, cfg.MockLatencyMax))
		log.Info().Msg("catalog: fixture mode")
	} else {
		cl, err := catalogapi.New(cfg.CatalogBase, cfg.CatalogRPS,
			catalogapi.WithAPIKey(cfg.CatalogKey),
			catalogapi.WithTimeout(cfg.CatalogTimeout),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize catalog client")
		}
		src = cl
		log.Info().Str("base", cfg.CatalogBase).Dur("timeout", cfg.CatalogTimeout).Msg("catalog: remote mode")
	}

	var sender domain.BookingSender
	if cfg.DemoBooking() {
		sender = bookingapi.NewDemoSender(cfg.BookingDemoDelay)
	} else {
		hs, err := bookingapi.NewHTTPSender(cfg.BookingEndpoint, cfg.BookingTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize booking sender")
		}
		sender = hs
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; reads fall through to the catalog")
		}
		cache = rc
	}

	catalog := app.NewCatalogService(src, cache, cfg.CacheTTL)
	booking := app.NewBookingService(app.NewBookingValidator(cfg.TimeZone, nil), sender)

	if cache != nil && cfg.WarmWorkers > 0 {
		go func() {
			if err := catalog.Warm(ctx, cfg.WarmWorkers); err != nil {
				log.Warn().Err(err).Msg("catalog warm-up incomplete")
			}
		}()
	}

	// http
	srv := server.New(log.Logger, cfg.CatalogTimeout+cfg.BookingTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Catalog: catalog, Booking: booking, Locale: cfg.BookingLocale})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
