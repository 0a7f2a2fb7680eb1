package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go-attribution/internal/collector/consumer"
	"go-attribution/internal/collector/database"
	httpdelivery "go-attribution/internal/collector/delivery/http"
	"go-attribution/internal/collector/enrichment"
	"go-attribution/internal/collector/repository/sqlite"
	"go-attribution/internal/collector/usecase"
	"go-attribution/internal/config"
	"go-attribution/internal/infra/eventbus"

	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("landing service failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	db, err := database.OpenDB(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		return err
	}
	logger.Info("database initialized", zap.String("path", cfg.DatabasePath))

	wmLogger := eventbus.NewZapLoggerAdapter(logger)
	bus := eventbus.NewEventBus(wmLogger)
	defer bus.Close()

	relaySink, err := newRelaySink(ctx, cfg, bus, logger)
	if err != nil {
		return err
	}
	defer relaySink.Close()

	var geo *enrichment.GeoIPResolver
	if cfg.GeoIPPath != "" {
		geo, err = enrichment.OpenGeoIP(cfg.GeoIPPath)
		if err != nil {
			return fmt.Errorf("open geoip database: %w", err)
		}
		defer geo.Close()
	}

	landings := usecase.NewLandingService(sqlite.NewLandingRepository(db), enrichment.NewEnricher(geo), logger)
	relay := usecase.NewEventRelay(relaySink.sink, sqlite.NewEventCountRepository(db), logger)

	eventRouter, err := eventbus.NewRouter(bus, wmLogger)
	if err != nil {
		return fmt.Errorf("event router: %w", err)
	}
	eventRouter.AddHandler(consumer.NewEventCounter(relay))
	go func() {
		if err := eventRouter.Run(ctx); err != nil {
			logger.Error("event router stopped", zap.Error(err))
		}
	}()
	defer eventRouter.Close()
	<-eventRouter.Running()

	rateLimiter := httpdelivery.NewRateLimiter(cfg.RateLimit)
	defer rateLimiter.Stop()

	handler := httpdelivery.NewHandler(landings, relay, logger, db)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpdelivery.NewRouter(handler, logger, rateLimiter),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.Port),
			zap.Int("rate_limit", cfg.RateLimit),
			zap.Strings("relay_backends", relaySink.sink.Live()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
