package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/streetlab/cleaners-booking/internal/availability"
	"github.com/streetlab/cleaners-booking/internal/booking"
	"github.com/streetlab/cleaners-booking/internal/catalog"
	"github.com/streetlab/cleaners-booking/internal/observability/metrics"
	"github.com/streetlab/cleaners-booking/pkg/logging"
)

// Machine applies wizard transitions to sessions. It holds only read-only
// collaborators, so one Machine serves every session.
type Machine struct {
	catalog  *catalog.Catalog
	slots    availability.Slots
	source   availability.Source
	location *time.Location
	now      func() time.Time
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
}

// Option customises a Machine.
type Option func(*Machine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithLocation sets the business time zone used to decide "today".
func WithLocation(loc *time.Location) Option {
	return func(m *Machine) {
		if loc != nil {
			m.location = loc
		}
	}
}

// WithMetrics attaches transition counters.
func WithMetrics(bm *metrics.BookingMetrics) Option {
	return func(m *Machine) { m.metrics = bm }
}

// NewMachine builds a machine over a catalog, the daily slot sequence and an
// occupied-slot source.
func NewMachine(cat *catalog.Catalog, slots availability.Slots, source availability.Source, logger *logging.Logger, opts ...Option) *Machine {
	if cat == nil || source == nil {
		panic("wizard: catalog and availability source required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	m := &Machine{
		catalog:  cat,
		slots:    slots,
		source:   source,
		location: time.UTC,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Catalog exposes the service catalog the machine validates against.
func (m *Machine) Catalog() *catalog.Catalog { return m.catalog }

// Slots exposes the daily slot sequence.
func (m *Machine) Slots() availability.Slots { return m.slots }

// Today is the current calendar day in the business time zone.
func (m *Machine) Today() availability.Date {
	return availability.Today(m.now(), m.location)
}

// Open starts a fresh session on the service selection step.
func (m *Machine) Open() *Session {
	s := &Session{
		ID:       uuid.NewString(),
		Step:     StepSelectingServices,
		Draft:    Draft{Services: []string{}},
		OpenedAt: m.now().UTC(),
	}
	m.metrics.ObserveOpened()
	return s
}

// ToggleService adds id to the selection when absent and removes it when
// present. Only allowed on the first step.
func (m *Machine) ToggleService(s *Session, id string) error {
	if err := m.expect(s, StepSelectingServices, "toggle service"); err != nil {
		return err
	}
	if !m.catalog.Has(id) {
		return fmt.Errorf("%w: %s", catalog.ErrUnknownService, id)
	}

	services := s.Draft.Services[:0:0]
	removed := false
	for _, existing := range s.Draft.Services {
		if existing == id {
			removed = true
			continue
		}
		services = append(services, existing)
	}
	if !removed {
		services = append(services, id)
	}
	s.Draft.Services = services
	return nil
}

// Totals returns the running duration and cost floor of the selection.
func (m *Machine) Totals(s *Session) catalog.Totals {
	return m.catalog.Totals(s.Draft.Services)
}

// SelectDate records the chosen day. Days before today are rejected; full
// days are accepted because capacity is advisory. Choosing a different day
// drops a previously chosen time.
func (m *Machine) SelectDate(s *Session, date availability.Date) error {
	if err := m.expect(s, StepSelectingDate, "select date"); err != nil {
		return err
	}
	if date.IsZero() {
		return fmt.Errorf("%w: empty date", availability.ErrInvalidDate)
	}
	if date.Before(m.Today()) {
		m.metrics.ObserveRejection(s.Step.String(), "past_date")
		return fmt.Errorf("%w: %s", ErrPastDate, date)
	}
	if s.Draft.Date != nil && *s.Draft.Date != date {
		s.Draft.Time = ""
	}
	d := date
	s.Draft.Date = &d
	return nil
}

// SelectTime records the chosen start slot once it can hold the aggregate
// duration of the selection.
func (m *Machine) SelectTime(ctx context.Context, s *Session, slot string) error {
	if err := m.expect(s, StepSelectingTime, "select time"); err != nil {
		return err
	}
	ok, err := m.slotFits(ctx, s, slot)
	if err != nil {
		return err
	}
	if !ok {
		m.metrics.ObserveRejection(s.Step.String(), "slot_unavailable")
		return fmt.Errorf("%w: %s", ErrSlotUnavailable, slot)
	}
	s.Draft.Time = slot
	return nil
}

// SetLocation records the free-text location or zone.
func (m *Machine) SetLocation(s *Session, location string) error {
	if err := m.expect(s, StepConfirming, "set location"); err != nil {
		return err
	}
	s.Draft.Location = strings.TrimSpace(location)
	return nil
}

// Next advances one step if the current step's requirements hold.
func (m *Machine) Next(ctx context.Context, s *Session) error {
	if s.Closed() {
		return ErrSessionClosed
	}

	var reason string
	switch s.Step {
	case StepSelectingServices:
		if len(s.Draft.Services) == 0 {
			reason = "select at least one service"
		}
	case StepSelectingDate:
		switch {
		case s.Draft.Date == nil:
			reason = "select a date"
		case s.Draft.Date.Before(m.Today()):
			reason = "selected date is in the past"
		}
	case StepSelectingTime:
		if s.Draft.Time == "" {
			reason = "select a time slot"
			break
		}
		ok, err := m.slotFits(ctx, s, s.Draft.Time)
		if err != nil {
			return err
		}
		if !ok {
			reason = "selected time slot no longer fits the selection"
		}
	default:
		return wrongStep("next", s.Step)
	}

	if reason != "" {
		m.metrics.ObserveRejection(s.Step.String(), reason)
		return guardError(reason)
	}

	m.move(s, s.Step+1)
	return nil
}

// Back returns to the previous step without clearing any data.
func (m *Machine) Back(s *Session) error {
	if s.Closed() {
		return ErrSessionClosed
	}
	if s.Step == StepSelectingServices {
		return wrongStep("back", s.Step)
	}
	m.move(s, s.Step-1)
	return nil
}

// Cancel closes the session from any step and discards the draft.
func (m *Machine) Cancel(s *Session) error {
	if s.Closed() {
		return ErrSessionClosed
	}
	from := s.Step
	s.Step = StepClosed
	s.Draft = Draft{}
	m.metrics.ObserveTransition(from.String(), StepClosed.String())
	m.logger.Debug("wizard: session cancelled", "session_id", s.ID, "from", from.String())
	return nil
}

// Confirm validates the whole draft, closes the session and returns the
// booking request to hand off.
func (m *Machine) Confirm(ctx context.Context, s *Session) (*booking.Request, error) {
	if err := m.expect(s, StepConfirming, "confirm"); err != nil {
		return nil, err
	}
	if s.Draft.Location == "" {
		m.metrics.ObserveRejection(s.Step.String(), "enter a location")
		return nil, guardError("enter a location")
	}
	if len(s.Draft.Services) == 0 || s.Draft.Date == nil || s.Draft.Time == "" {
		return nil, guardError("draft incomplete")
	}
	ok, err := m.slotFits(ctx, s, s.Draft.Time)
	if err != nil {
		return nil, err
	}
	if !ok {
		m.metrics.ObserveRejection(s.Step.String(), "slot_unavailable")
		return nil, fmt.Errorf("%w: %s", ErrSlotUnavailable, s.Draft.Time)
	}

	services, err := m.catalog.Resolve(s.Draft.Services)
	if err != nil {
		return nil, err
	}
	totals := m.Totals(s)

	req := &booking.Request{
		SessionID:       s.ID,
		Services:        services,
		Date:            *s.Draft.Date,
		Time:            s.Draft.Time,
		DurationMinutes: totals.DurationMinutes,
		EstimatedCost:   totals.EstimatedCost,
		Location:        s.Draft.Location,
		RequestedAt:     m.now().UTC(),
	}

	m.move(s, StepClosed)
	s.Draft = Draft{}
	return req, nil
}

// SlotGrid reports which start slots of the chosen day can hold the draft.
func (m *Machine) SlotGrid(ctx context.Context, s *Session) ([]availability.SlotStatus, error) {
	if s.Closed() {
		return nil, ErrSessionClosed
	}
	if s.Draft.Date == nil {
		return nil, guardError("select a date")
	}
	occupied, err := m.source.Occupied(ctx, *s.Draft.Date)
	if err != nil {
		return nil, err
	}
	return availability.SlotGrid(occupied, m.Totals(s).DurationMinutes, m.slots), nil
}

// Calendar classifies every day of a month for the date step.
func (m *Machine) Calendar(ctx context.Context, year int, month time.Month) ([]availability.DayStatus, error) {
	return availability.Month(ctx, m.source, year, month, m.Today(), m.slots)
}

func (m *Machine) slotFits(ctx context.Context, s *Session, slot string) (bool, error) {
	if s.Draft.Date == nil {
		return false, guardError("select a date")
	}
	occupied, err := m.source.Occupied(ctx, *s.Draft.Date)
	if err != nil {
		return false, err
	}
	return availability.IsSlotAvailable(occupied, slot, m.Totals(s).DurationMinutes, m.slots)
}

func (m *Machine) expect(s *Session, step Step, action string) error {
	if s.Closed() {
		return ErrSessionClosed
	}
	if s.Step != step {
		return wrongStep(action, s.Step)
	}
	return nil
}

func (m *Machine) move(s *Session, to Step) {
	from := s.Step
	s.Step = to
	m.metrics.ObserveTransition(from.String(), to.String())
	m.logger.Debug("wizard: step changed", "session_id", s.ID, "from", from.String(), "to", to.String())
}
