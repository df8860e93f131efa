// Package availability models the daily slot sequence, the table of occupied
// slots per day, and the checks the booking wizard runs against them.
package availability

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownSlot signals a slot id outside the fixed sequence. Callers
	// should treat it as a contract violation, not as "unavailable".
	ErrUnknownSlot = errors.New("availability: unknown time slot")

	// ErrInvalidDate is returned when a date key does not parse.
	ErrInvalidDate = errors.New("availability: invalid date")
)

// SlotMinutes is the length of one bookable unit.
const SlotMinutes = 60

// Slots is the ordered, immutable sequence of slot start times ("HH:MM").
type Slots struct {
	starts []string
	index  map[string]int
}

// NewSlots builds a sequence from explicit starts. Starts must be unique and
// valid wall-clock times.
func NewSlots(starts ...string) (Slots, error) {
	s := Slots{
		starts: make([]string, 0, len(starts)),
		index:  make(map[string]int, len(starts)),
	}
	for _, start := range starts {
		if _, err := time.Parse("15:04", start); err != nil {
			return Slots{}, fmt.Errorf("availability: bad slot %q: %w", start, err)
		}
		if _, dup := s.index[start]; dup {
			return Slots{}, fmt.Errorf("availability: duplicate slot %q", start)
		}
		s.index[start] = len(s.starts)
		s.starts = append(s.starts, start)
	}
	return s, nil
}

// HourlySlots returns hourly starts from openHour to lastHour inclusive.
func HourlySlots(openHour, lastHour int) Slots {
	var starts []string
	for h := openHour; h <= lastHour; h++ {
		starts = append(starts, fmt.Sprintf("%02d:00", h))
	}
	s, err := NewSlots(starts...)
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultSlots is 09:00 through 18:00, ten one-hour units.
func DefaultSlots() Slots {
	return HourlySlots(9, 18)
}

// Len returns the number of slots in a day.
func (s Slots) Len() int { return len(s.starts) }

// All returns a copy of the slot starts in order.
func (s Slots) All() []string {
	out := make([]string, len(s.starts))
	copy(out, s.starts)
	return out
}

// At returns the slot at position i.
func (s Slots) At(i int) (string, bool) {
	if i < 0 || i >= len(s.starts) {
		return "", false
	}
	return s.starts[i], true
}

// Index returns the position of slot in the sequence.
func (s Slots) Index(slot string) (int, error) {
	i, ok := s.index[slot]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	return i, nil
}

// Contains reports whether slot is part of the sequence.
func (s Slots) Contains(slot string) bool {
	_, ok := s.index[slot]
	return ok
}

// SlotsNeeded converts a duration into whole slot units, rounding up.
func SlotsNeeded(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	return (minutes + SlotMinutes - 1) / SlotMinutes
}

// IsSlotAvailable reports whether a booking of the given length can start at
// start: every one of the SlotsNeeded consecutive slots must exist before
// closing time and must not be occupied. It never searches for another start.
func IsSlotAvailable(occupied []string, start string, minutes int, slots Slots) (bool, error) {
	startIndex, err := slots.Index(start)
	if err != nil {
		return false, err
	}

	taken := make(map[string]struct{}, len(occupied))
	for _, slot := range occupied {
		taken[slot] = struct{}{}
	}

	for i := 0; i < SlotsNeeded(minutes); i++ {
		slot, ok := slots.At(startIndex + i)
		if !ok {
			return false, nil
		}
		if _, busy := taken[slot]; busy {
			return false, nil
		}
	}
	return true, nil
}

// SlotStatus is one cell of the time-step grid.
type SlotStatus struct {
	Start     string `json:"start"`
	Available bool   `json:"available"`
}

// SlotGrid evaluates IsSlotAvailable for every slot of the day.
func SlotGrid(occupied []string, minutes int, slots Slots) []SlotStatus {
	grid := make([]SlotStatus, 0, slots.Len())
	for _, start := range slots.starts {
		ok, _ := IsSlotAvailable(occupied, start, minutes, slots)
		grid = append(grid, SlotStatus{Start: start, Available: ok})
	}
	return grid
}
