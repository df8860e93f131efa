// Package wizard implements the four-step booking flow: service selection,
// date, time slot and confirmation. A Session is a plain snapshot of one
// visitor's progress; the Machine owns every transition on it.
package wizard

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streetlab/cleaners-booking/internal/availability"
)

// Step is a wizard state.
type Step int

const (
	StepClosed Step = iota
	StepSelectingServices
	StepSelectingDate
	StepSelectingTime
	StepConfirming
)

var stepNames = map[Step]string{
	StepClosed:            "closed",
	StepSelectingServices: "selecting_services",
	StepSelectingDate:     "selecting_date",
	StepSelectingTime:     "selecting_time",
	StepConfirming:        "confirming",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Number is the 1-based position shown to the visitor, 0 when closed.
func (s Step) Number() int {
	return int(s)
}

// MarshalJSON encodes the step name.
func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a step name.
func (s *Step) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	for step, n := range stepNames {
		if n == name {
			*s = step
			return nil
		}
	}
	return fmt.Errorf("wizard: unknown step %q", name)
}

// Draft is the data collected so far. Services keeps selection order for
// display; membership is unique.
type Draft struct {
	Services []string           `json:"services"`
	Date     *availability.Date `json:"date,omitempty"`
	Time     string             `json:"time,omitempty"`
	Location string             `json:"location,omitempty"`
}

// HasService reports whether id is selected.
func (d Draft) HasService(id string) bool {
	for _, s := range d.Services {
		if s == id {
			return true
		}
	}
	return false
}

// Session is the snapshot persisted between requests.
type Session struct {
	ID       string    `json:"id"`
	Step     Step      `json:"step"`
	Draft    Draft     `json:"draft"`
	OpenedAt time.Time `json:"opened_at"`
}

// Closed reports whether the session can no longer change.
func (s *Session) Closed() bool {
	return s.Step == StepClosed
}
