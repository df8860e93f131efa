package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/streetlab/cleaners-booking/internal/api/router"
	"github.com/streetlab/cleaners-booking/internal/availability"
	"github.com/streetlab/cleaners-booking/internal/booking"
	"github.com/streetlab/cleaners-booking/internal/catalog"
	appconfig "github.com/streetlab/cleaners-booking/internal/config"
	"github.com/streetlab/cleaners-booking/internal/contact"
	"github.com/streetlab/cleaners-booking/internal/content"
	httpmiddleware "github.com/streetlab/cleaners-booking/internal/http/middleware"
	"github.com/streetlab/cleaners-booking/internal/notify"
	"github.com/streetlab/cleaners-booking/internal/wizard"
	"github.com/streetlab/cleaners-booking/pkg/logging"
)

func main() {
	adminSubject := flag.String("admin-token", "", "print an admin JWT for the given subject and exit")
	adminTTL := flag.Duration("admin-token-ttl", 24*time.Hour, "lifetime of the token printed by -admin-token")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	if *adminSubject != "" {
		if err := printAdminToken(cfg, *adminSubject, *adminTTL); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	logger := logging.NewWithOptions(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.Info("starting streetlab booking API",
		"env", cfg.Env,
		"port", cfg.Port,
		"timezone", cfg.Timezone,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsHandler, bookingMetrics := setupMetrics(nil)

	cat := catalog.Default()
	slots := availability.DefaultSlots()

	pool := connectPostgresPool(ctx, cfg.DatabaseURL, logger)
	if pool != nil {
		defer pool.Close()
	}
	source := setupAvailabilitySource(pool, logger)

	store, redisClient := setupDraftStore(ctx, cfg, logger)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	notifier := notify.NewService(
		setupEmailSender(ctx, cfg, logger),
		setupSMSSender(cfg, logger),
		logger,
	)
	adapter := booking.NewWhatsAppAdapter(notifier, booking.WhatsAppConfig{
		Number:     cfg.WhatsAppNumber,
		OwnerPhone: cfg.OwnerPhone,
		OwnerEmail: cfg.OwnerEmail,
	}, logger)
	bookingService := booking.NewService(adapter, bookingMetrics, logger)

	machine := wizard.NewMachine(cat, slots, source, logger,
		wizard.WithLocation(cfg.Location()),
		wizard.WithMetrics(bookingMetrics),
	)
	origins := httpmiddleware.ParseOrigins(cfg.CORSAllowedOrigins)

	r := router.New(&router.Config{
		Logger:         logger,
		WizardHandler:  wizard.NewHandler(machine, store, bookingService, logger),
		ContentHandler: content.NewHandler(content.DefaultPage(cat), cfg.TestimonialRotation, origins.CheckOrigin, logger),
		ContactHandler: contact.NewHandler(contact.Config{
			WhatsAppNumber: cfg.WhatsAppNumber,
			OwnerPhone:     cfg.OwnerPhone,
		}, notifier, bookingMetrics, logger),
		AdminHandler:    availability.NewAdminHandler(source, slots, logger),
		MetricsHandler:  metricsHandler,
		HealthCheck:     healthCheck(pool, redisClient),
		AdminAuthSecret: cfg.AdminJWTSecret,
		CORSOrigins:     origins,
		RateLimiter:     httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	// WriteTimeout stays zero so testimonial streams are not cut off.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func printAdminToken(cfg *appconfig.Config, subject string, ttl time.Duration) error {
	if cfg.AdminJWTSecret == "" {
		return errors.New("ADMIN_JWT_SECRET is required to sign admin tokens")
	}
	token, err := httpmiddleware.SignAdminToken(cfg.AdminJWTSecret, subject, httpmiddleware.AdminRole, time.Now().Add(ttl))
	if err != nil {
		return fmt.Errorf("sign admin token: %w", err)
	}
	fmt.Println(token)
	return nil
}
