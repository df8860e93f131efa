package contact

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/streetlab/cleaners-booking/internal/booking"
	"github.com/streetlab/cleaners-booking/internal/observability/metrics"
	"github.com/streetlab/cleaners-booking/pkg/logging"
)

// Notifier delivers the message to the owner by SMS.
type Notifier interface {
	SendSMS(ctx context.Context, to, body string) error
}

// Config holds the destination number and the optional owner phone.
type Config struct {
	WhatsAppNumber string
	OwnerPhone     string
}

// Handler handles POST /contact.
type Handler struct {
	cfg      Config
	notifier Notifier
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
}

// NewHandler creates a contact handler. notifier and bm may be nil.
func NewHandler(cfg Config, notifier Notifier, bm *metrics.BookingMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		cfg:      cfg,
		notifier: notifier,
		metrics:  bm,
		logger:   logger,
	}
}

// Response carries the rendered message and its deep link.
type Response struct {
	Message       string `json:"message"`
	URL           string `json:"url"`
	OwnerNotified bool   `json:"owner_notified"`
}

// Submit handles POST /contact requests.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ObserveContact("invalid")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		h.metrics.ObserveContact("invalid")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	msg := FormatMessage(req)
	resp := Response{
		Message: msg,
		URL:     booking.WhatsAppLink(h.cfg.WhatsAppNumber, msg),
	}

	if h.notifier != nil && h.cfg.OwnerPhone != "" {
		if err := h.notifier.SendSMS(r.Context(), h.cfg.OwnerPhone, msg); err != nil {
			h.logger.Warn("contact: owner sms failed", "error", err)
		} else {
			resp.OwnerNotified = true
		}
	}

	h.metrics.ObserveContact("ok")
	h.logger.Info("contact request received", "service", req.Service, "owner_notified", resp.OwnerNotified)
	writeJSON(w, http.StatusOK, resp)
}

// Topics handles GET /contact/topics.
func (h *Handler) Topics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"topics": Topics})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
