// Package catalog holds the fixed list of cleaning services offered on the site
// and the arithmetic the booking wizard runs over a selection of them.
package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownService is returned when an id is not part of the catalog.
var ErrUnknownService = errors.New("catalog: unknown service")

// PriceRange is an inclusive price band in lei.
type PriceRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// String renders the band the way the site prints it, e.g. "140-170".
func (p PriceRange) String() string {
	return fmt.Sprintf("%d-%d", p.Low, p.High)
}

// Service is one bookable offering. Services are defined at startup and never
// change at runtime.
type Service struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	DurationMinutes int        `json:"duration_minutes"`
	Price           PriceRange `json:"price"`
	Category        string     `json:"category"`
}

// Catalog is an ordered, read-only set of services.
type Catalog struct {
	services []Service
	byID     map[string]int
}

// New builds a catalog from services in display order. Ids must be unique and
// durations positive.
func New(services []Service) (*Catalog, error) {
	c := &Catalog{
		services: make([]Service, 0, len(services)),
		byID:     make(map[string]int, len(services)),
	}
	for _, svc := range services {
		if svc.ID == "" {
			return nil, errors.New("catalog: service id required")
		}
		if _, dup := c.byID[svc.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate service id %q", svc.ID)
		}
		if svc.DurationMinutes <= 0 {
			return nil, fmt.Errorf("catalog: service %q needs a positive duration", svc.ID)
		}
		if svc.Price.Low > svc.Price.High {
			return nil, fmt.Errorf("catalog: service %q has an inverted price range", svc.ID)
		}
		c.byID[svc.ID] = len(c.services)
		c.services = append(c.services, svc)
	}
	return c, nil
}

// Default returns the catalog the booking wizard offers.
func Default() *Catalog {
	c, err := New([]Service{
		{ID: "canapea-2L", Name: "Canapea 2 locuri", DurationMinutes: 45, Price: PriceRange{140, 170}, Category: "textile"},
		{ID: "canapea-3L", Name: "Canapea 3 locuri", DurationMinutes: 60, Price: PriceRange{200, 250}, Category: "textile"},
		{ID: "saltea-single", Name: "Saltea single", DurationMinutes: 45, Price: PriceRange{130, 170}, Category: "textile"},
		{ID: "saltea-matrimon", Name: "Saltea matrimonială", DurationMinutes: 60, Price: PriceRange{170, 230}, Category: "textile"},
		{ID: "auto-interior", Name: "Interior Auto Complet", DurationMinutes: 120, Price: PriceRange{350, 500}, Category: "auto"},
		{ID: "calorifere", Name: "Calorifere (4 buc)", DurationMinutes: 30, Price: PriceRange{100, 160}, Category: "steam"},
		{ID: "baie", Name: "Igienizare Baie", DurationMinutes: 90, Price: PriceRange{150, 250}, Category: "steam"},
	})
	if err != nil {
		panic(err)
	}
	return c
}

// Services returns a copy of the catalog in display order.
func (c *Catalog) Services() []Service {
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

// Lookup finds a service by id.
func (c *Catalog) Lookup(id string) (Service, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Service{}, false
	}
	return c.services[idx], true
}

// Has reports whether id belongs to the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Resolve maps ids to services, keeping the given order.
func (c *Catalog) Resolve(ids []string) ([]Service, error) {
	out := make([]Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := c.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownService, id)
		}
		out = append(out, svc)
	}
	return out, nil
}

// Totals is the running aggregate for a selection.
type Totals struct {
	DurationMinutes int `json:"duration_minutes"`
	EstimatedCost   int `json:"estimated_cost"`
}

// Totals sums durations and the low price bound of every selected service.
// The estimate is a floor on purpose: the site quotes "~N lei" from the
// cheapest end of each band. Unknown ids contribute nothing.
func (c *Catalog) Totals(ids []string) Totals {
	var t Totals
	for _, id := range ids {
		svc, ok := c.Lookup(id)
		if !ok {
			continue
		}
		t.DurationMinutes += svc.DurationMinutes
		t.EstimatedCost += svc.Price.Low
	}
	return t
}

// FormatDuration renders minutes as "45min", "1h 15min" or "2h".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	hours := minutes / 60
	rest := minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dmin", rest)
	case rest == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dmin", hours, rest)
	}
}
