package booking

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/streetlab/cleaners-booking/internal/observability/metrics"
	"github.com/streetlab/cleaners-booking/pkg/logging"
)

var tracer = otel.Tracer("streetlab.internal.booking")

// Service runs confirmed requests through the configured adapter.
type Service struct {
	adapter Adapter
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
}

func NewService(adapter Adapter, bm *metrics.BookingMetrics, logger *logging.Logger) *Service {
	if adapter == nil {
		panic("booking: adapter required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{adapter: adapter, metrics: bm, logger: logger}
}

// Confirm hands req off. Owner notification failures are logged and the
// result is still returned; only a missing result is an error.
func (s *Service) Confirm(ctx context.Context, req Request) (*Result, error) {
	ctx, span := tracer.Start(ctx, "booking.confirm")
	defer span.End()
	span.SetAttributes(
		attribute.String("booking.adapter", s.adapter.Name()),
		attribute.String("booking.session_id", req.SessionID),
		attribute.String("booking.date", req.Date.String()),
		attribute.String("booking.time", req.Time),
		attribute.Int("booking.services", len(req.Services)),
		attribute.Int("booking.duration_minutes", req.DurationMinutes),
	)

	start := time.Now()
	result, err := s.adapter.Handoff(ctx, req)
	elapsed := time.Since(start).Seconds()

	if result == nil {
		if err == nil {
			err = fmt.Errorf("booking: %s adapter returned no result", s.adapter.Name())
		}
		span.RecordError(err)
		s.metrics.ObserveHandoff(s.adapter.Name(), "error", elapsed)
		s.logger.Error("booking handoff failed", "error", err, "session_id", req.SessionID, "adapter", s.adapter.Name())
		return nil, fmt.Errorf("booking: handoff: %w", err)
	}

	status := "ok"
	if err != nil {
		status = "notify_failed"
		span.RecordError(err)
		s.logger.Warn("booking handed off without owner notification", "error", err, "session_id", req.SessionID)
	}
	span.SetAttributes(attribute.Bool("booking.owner_notified", result.OwnerNotified))
	s.metrics.ObserveHandoff(s.adapter.Name(), status, elapsed)

	s.logger.Info("booking handed off",
		"session_id", req.SessionID,
		"adapter", s.adapter.Name(),
		"date", req.Date.String(),
		"time", req.Time,
		"duration_minutes", req.DurationMinutes,
		"estimated_cost", req.EstimatedCost,
	)
	return result, nil
}
