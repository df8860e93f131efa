package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/streetlab/cleaners-booking/internal/availability"
	"github.com/streetlab/cleaners-booking/internal/booking"
	"github.com/streetlab/cleaners-booking/internal/catalog"
	"github.com/streetlab/cleaners-booking/pkg/logging"
)

// Handoff receives confirmed requests.
type Handoff interface {
	Confirm(ctx context.Context, req booking.Request) (*booking.Result, error)
}

// Handler exposes the wizard over HTTP. Every request loads the session
// snapshot, applies one transition and saves it back.
type Handler struct {
	machine *Machine
	store   Store
	handoff Handoff
	logger  *logging.Logger
}

func NewHandler(machine *Machine, store Store, handoff Handoff, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		machine: machine,
		store:   store,
		handoff: handoff,
		logger:  logger,
	}
}

// Routes returns the router mounted under /booking.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/services", h.ListServices)
	r.Get("/calendar", h.Calendar)
	r.Post("/sessions", h.Open)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Cancel)
		r.Post("/services/{serviceID}", h.ToggleService)
		r.Put("/date", h.SelectDate)
		r.Get("/slots", h.Slots)
		r.Put("/time", h.SelectTime)
		r.Put("/location", h.SetLocation)
		r.Post("/next", h.Next)
		r.Post("/back", h.Back)
		r.Post("/confirm", h.Confirm)
	})
	return r
}

// SessionView is the JSON shape of a session with derived totals.
type SessionView struct {
	ID            string `json:"id"`
	Step          Step   `json:"step"`
	StepNumber    int    `json:"step_number"`
	Draft         Draft  `json:"draft"`
	Duration      int    `json:"duration_minutes"`
	DurationLabel string `json:"duration_label"`
	EstimatedCost int    `json:"estimated_cost"`
}

func (h *Handler) view(s *Session) SessionView {
	totals := h.machine.Totals(s)
	return SessionView{
		ID:            s.ID,
		Step:          s.Step,
		StepNumber:    s.Step.Number(),
		Draft:         s.Draft,
		Duration:      totals.DurationMinutes,
		DurationLabel: catalog.FormatDuration(totals.DurationMinutes),
		EstimatedCost: totals.EstimatedCost,
	}
}

// ListServices handles GET /booking/services.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"services": h.machine.Catalog().Services()})
}

// Calendar handles GET /booking/calendar?month=YYYY-MM.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	today := h.machine.Today()
	year, month := today.Year, today.Month
	if raw := r.URL.Query().Get("month"); raw != "" {
		t, err := time.Parse("2006-01", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}
		year, month = t.Year(), t.Month()
	}

	days, err := h.machine.Calendar(r.Context(), year, month)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"month": fmt.Sprintf("%04d-%02d", year, int(month)),
		"today": today,
		"days":  days,
	})
}

// Open handles POST /booking/sessions.
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	s := h.machine.Open()
	if err := h.store.Save(r.Context(), s); err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.Info("booking session opened", "session_id", s.ID)
	writeJSON(w, http.StatusCreated, h.view(s))
}

// Get handles GET /booking/sessions/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

// Cancel handles DELETE /booking/sessions/{id}.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(s *Session) error { return h.machine.Cancel(s) })
}

// ToggleService handles POST /booking/sessions/{id}/services/{serviceID}.
func (h *Handler) ToggleService(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "serviceID")
	h.apply(w, r, func(s *Session) error { return h.machine.ToggleService(s, serviceID) })
}

type dateRequest struct {
	Date string `json:"date"`
}

// SelectDate handles PUT /booking/sessions/{id}/date.
func (h *Handler) SelectDate(w http.ResponseWriter, r *http.Request) {
	var req dateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	date, err := availability.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.apply(w, r, func(s *Session) error { return h.machine.SelectDate(s, date) })
}

// Slots handles GET /booking/sessions/{id}/slots.
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	grid, err := h.machine.SlotGrid(r.Context(), s)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":  s.Draft.Date,
		"slots": grid,
	})
}

type timeRequest struct {
	Time string `json:"time"`
}

// SelectTime handles PUT /booking/sessions/{id}/time.
func (h *Handler) SelectTime(w http.ResponseWriter, r *http.Request) {
	var req timeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.apply(w, r, func(s *Session) error { return h.machine.SelectTime(r.Context(), s, req.Time) })
}

type locationRequest struct {
	Location string `json:"location"`
}

// SetLocation handles PUT /booking/sessions/{id}/location.
func (h *Handler) SetLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.apply(w, r, func(s *Session) error { return h.machine.SetLocation(s, req.Location) })
}

// Next handles POST /booking/sessions/{id}/next.
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(s *Session) error { return h.machine.Next(r.Context(), s) })
}

// Back handles POST /booking/sessions/{id}/back.
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(s *Session) error { return h.machine.Back(s) })
}

// ConfirmResponse carries the request and the deep link.
type ConfirmResponse struct {
	Booking *booking.Request `json:"booking"`
	Handoff *booking.Result  `json:"handoff"`
}

// Confirm handles POST /booking/sessions/{id}/confirm.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	req, err := h.machine.Confirm(r.Context(), s)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := h.handoff.Confirm(r.Context(), *req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.Save(r.Context(), s); err != nil {
		// The link is already built; a stale draft expires with its TTL.
		h.logger.Warn("failed to drop confirmed session", "session_id", s.ID, "error", err)
	}
	writeJSON(w, http.StatusOK, ConfirmResponse{Booking: req, Handoff: result})
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request, fn func(*Session) error) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := fn(s); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.Save(r.Context(), s); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	s, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	return s, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("booking request failed", "error", err, "path", r.URL.Path)
		writeError(w, status, "internal server error")
		return
	}
	writeError(w, status, err.Error())
}

// StatusFor maps wizard and domain errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, availability.ErrUnknownSlot):
		return http.StatusUnprocessableEntity
	case errors.Is(err, catalog.ErrUnknownService),
		errors.Is(err, availability.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, ErrGuard),
		errors.Is(err, ErrWrongStep),
		errors.Is(err, ErrSessionClosed),
		errors.Is(err, ErrPastDate),
		errors.Is(err, ErrSlotUnavailable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
