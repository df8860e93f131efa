package main

import (
	"context"
	"crypto/tls"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/streetlab/cleaners-booking/cmd/mainconfig"
	"github.com/streetlab/cleaners-booking/internal/availability"
	appconfig "github.com/streetlab/cleaners-booking/internal/config"
	"github.com/streetlab/cleaners-booking/internal/notify"
	"github.com/streetlab/cleaners-booking/internal/observability/metrics"
	"github.com/streetlab/cleaners-booking/internal/wizard"
	"github.com/streetlab/cleaners-booking/pkg/logging"
)

// setupMetrics registers booking metrics on reg (a fresh registry when nil)
// and returns the handler that exposes them.
func setupMetrics(reg *prometheus.Registry) (http.Handler, *metrics.BookingMetrics) {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	bm := metrics.NewBookingMetrics(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), bm
}

func connectPostgresPool(ctx context.Context, url string, logger *logging.Logger) *pgxpool.Pool {
	if url == "" {
		return nil
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		logger.Error("failed to create postgres pool, using seed availability", "error", err)
		return nil
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres unreachable, using seed availability", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("connected to postgres")
	return pool
}

func setupAvailabilitySource(pool *pgxpool.Pool, logger *logging.Logger) availability.RangeSource {
	if pool == nil {
		logger.Info("availability: using static seed table")
		return availability.DefaultTable()
	}
	logger.Info("availability: using postgres occupied_slots")
	return availability.NewPostgresSource(pool)
}

// setupDraftStore picks Redis when REDIS_ADDR is set and reachable, and the
// in-process store otherwise.
func setupDraftStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (wizard.Store, *redis.Client) {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set; booking drafts are kept in memory")
		return wizard.NewMemoryStore(cfg.DraftTTL), nil
	}
	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("redis unreachable; booking drafts are kept in memory", "error", err, "addr", cfg.RedisAddr)
		_ = client.Close()
		return wizard.NewMemoryStore(cfg.DraftTTL), nil
	}
	logger.Info("booking drafts stored in redis", "addr", cfg.RedisAddr, "ttl", cfg.DraftTTL.String())
	return wizard.NewRedisStore(client, cfg.DraftTTL), client
}

func setupEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "sendgrid":
		if sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); sender != nil {
			logger.Info("owner email via sendgrid")
			return sender
		}
		logger.Warn("EMAIL_PROVIDER=sendgrid but SENDGRID_API_KEY is empty; using stub")
	case "ses":
		client, err := mainconfig.NewSESClient(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config; using stub email", "error", err)
			break
		}
		if sender := notify.NewSESSender(client, notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); sender != nil {
			logger.Info("owner email via ses", "region", cfg.AWSRegion)
			return sender
		}
	}
	return notify.NewStubEmailSender(logger)
}

func setupSMSSender(cfg *appconfig.Config, logger *logging.Logger) notify.SMSSender {
	if sender := notify.NewTwilioSender(notify.TwilioConfig{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		FromNumber: cfg.TwilioFromNumber,
	}, logger); sender != nil {
		logger.Info("owner sms via twilio")
		return sender
	}
	logger.Warn("twilio credentials missing; owner sms uses stub")
	return notify.NewStubSMSSender(logger)
}

func healthCheck(pool *pgxpool.Pool, client *redis.Client) func(ctx context.Context) error {
	if pool == nil && client == nil {
		return nil
	}
	return func(ctx context.Context) error {
		if pool != nil {
			if err := pool.Ping(ctx); err != nil {
				return err
			}
		}
		if client != nil {
			return client.Ping(ctx).Err()
		}
		return nil
	}
}
