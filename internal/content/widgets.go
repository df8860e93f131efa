package content

import (
	"encoding/json"
	"fmt"
	"time"
)

// Carousel is a wrap-around cursor over n items.
type Carousel struct {
	n     int
	index int
}

func NewCarousel(n int) *Carousel {
	if n < 1 {
		n = 1
	}
	return &Carousel{n: n}
}

func (c *Carousel) Len() int     { return c.n }
func (c *Carousel) Current() int { return c.index }

func (c *Carousel) Next() int {
	c.index = (c.index + 1) % c.n
	return c.index
}

func (c *Carousel) Prev() int {
	c.index = (c.index - 1 + c.n) % c.n
	return c.index
}

// Accordion tracks which FAQ entry is expanded. At most one is open.
type Accordion struct {
	n    int
	open int
}

func NewAccordion(n int) *Accordion {
	return &Accordion{n: n, open: -1}
}

// Toggle opens i, or closes it when it is already open. Out-of-range
// indexes are ignored.
func (a *Accordion) Toggle(i int) {
	if i < 0 || i >= a.n {
		return
	}
	if a.open == i {
		a.open = -1
		return
	}
	a.open = i
}

// Open returns the expanded index and whether any entry is expanded.
func (a *Accordion) Open() (int, bool) {
	return a.open, a.open >= 0
}

// Counter animates from zero to End over Duration.
type Counter struct {
	End      int
	Duration time.Duration
	Suffix   string
}

// ValueAt is floor(End * elapsed/Duration) until Duration passes, then End.
func (c Counter) ValueAt(elapsed time.Duration) int {
	if c.Duration <= 0 || elapsed >= c.Duration {
		return c.End
	}
	if elapsed <= 0 {
		return 0
	}
	return int(int64(c.End) * int64(elapsed) / int64(c.Duration))
}

// Label renders the counter at elapsed, e.g. "250+".
func (c Counter) Label(elapsed time.Duration) string {
	return fmt.Sprintf("%d%s", c.ValueAt(elapsed), c.Suffix)
}

func (c Counter) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		End        int    `json:"end"`
		DurationMS int64  `json:"duration_ms"`
		Suffix     string `json:"suffix"`
	}{c.End, c.Duration.Milliseconds(), c.Suffix})
}
