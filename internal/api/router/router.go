package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/streetlab/cleaners-booking/internal/availability"
	"github.com/streetlab/cleaners-booking/internal/contact"
	"github.com/streetlab/cleaners-booking/internal/content"
	httpmiddleware "github.com/streetlab/cleaners-booking/internal/http/middleware"
	"github.com/streetlab/cleaners-booking/internal/wizard"
	"github.com/streetlab/cleaners-booking/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	WizardHandler  *wizard.Handler
	ContentHandler *content.Handler
	ContactHandler *contact.Handler
	AdminHandler   *availability.AdminHandler
	MetricsHandler http.Handler

	// HealthCheck reports backing store health; nil means always healthy.
	HealthCheck func(ctx context.Context) error

	AdminAuthSecret string
	CORSOrigins     httpmiddleware.Origins
	RateLimiter     *httpmiddleware.RateLimiter
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(httpmiddleware.CORS(cfg.CORSOrigins))

	r.Get("/health", health(cfg.HealthCheck))
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Group(func(public chi.Router) {
		if cfg.RateLimiter != nil {
			public.Use(httpmiddleware.RateLimit(cfg.RateLimiter, cfg.Logger))
		}
		if cfg.ContentHandler != nil {
			public.Mount("/content", cfg.ContentHandler.Routes())
		}
		if cfg.WizardHandler != nil {
			public.Mount("/booking", cfg.WizardHandler.Routes())
		}
		if cfg.ContactHandler != nil {
			public.Post("/contact", cfg.ContactHandler.Submit)
			public.Get("/contact/topics", cfg.ContactHandler.Topics)
		}
	})

	if cfg.AdminHandler != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			admin.Get("/availability", cfg.AdminHandler.List)
		})
	}

	return r
}

func health(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "degraded", "error": err.Error()})
				return
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
