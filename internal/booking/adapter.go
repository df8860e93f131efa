// Package booking turns a confirmed wizard draft into a handoff: a
// pre-filled message for the business owner delivered through a messaging
// deep link, plus optional owner notifications.
package booking

import (
	"context"
	"time"

	"github.com/streetlab/cleaners-booking/internal/availability"
	"github.com/streetlab/cleaners-booking/internal/catalog"
)

// Request is the immutable result of a confirmed wizard session.
type Request struct {
	SessionID       string            `json:"session_id"`
	Services        []catalog.Service `json:"services"`
	Date            availability.Date `json:"date"`
	Time            string            `json:"time"`
	DurationMinutes int               `json:"duration_minutes"`
	EstimatedCost   int               `json:"estimated_cost"`
	Location        string            `json:"location"`
	RequestedAt     time.Time         `json:"requested_at"`
}

// ServiceNames lists the selected service names in selection order.
func (r Request) ServiceNames() []string {
	names := make([]string, 0, len(r.Services))
	for _, svc := range r.Services {
		names = append(names, svc.Name)
	}
	return names
}

// Result is what the visitor's browser needs to finish the handoff.
type Result struct {
	// Message is the plain-text summary carried by the deep link.
	Message string `json:"message"`
	// URL opens the messaging app with Message pre-filled.
	URL string `json:"url"`
	// OwnerNotified reports whether at least one owner notification went out.
	OwnerNotified bool `json:"owner_notified"`
}

// Adapter is implemented by every handoff channel.
type Adapter interface {
	// Name returns the adapter identifier, e.g. "whatsapp".
	Name() string

	// Handoff composes the message and link for a confirmed request. A
	// non-nil Result may be returned together with an error when only the
	// owner notifications failed.
	Handoff(ctx context.Context, req Request) (*Result, error)
}
