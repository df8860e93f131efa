package content

import (
	"context"
	"sync"
	"time"
)

// DefaultRotation is how long each testimonial stays on screen.
const DefaultRotation = 5 * time.Second

// Rotator advances a Carousel on a fixed interval unless paused. Each
// visitor gets its own Rotator; Updates delivers the index after every move.
type Rotator struct {
	mu       sync.Mutex
	carousel *Carousel
	interval time.Duration
	paused   bool

	updates chan int
	resumed chan struct{}
}

func NewRotator(n int, interval time.Duration) *Rotator {
	if interval <= 0 {
		interval = DefaultRotation
	}
	return &Rotator{
		carousel: NewCarousel(n),
		interval: interval,
		updates:  make(chan int, 1),
		resumed:  make(chan struct{}, 1),
	}
}

// Updates carries the latest index. Stale values are dropped when the
// reader falls behind.
func (r *Rotator) Updates() <-chan int { return r.updates }

func (r *Rotator) Current() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.carousel.Current()
}

func (r *Rotator) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

// Pause stops automatic advancing until Resume.
func (r *Rotator) Pause() {
	r.mu.Lock()
	r.paused = true
	r.mu.Unlock()
}

// Resume restarts automatic advancing with a full interval.
func (r *Rotator) Resume() {
	r.mu.Lock()
	r.paused = false
	r.mu.Unlock()
	select {
	case r.resumed <- struct{}{}:
	default:
	}
}

func (r *Rotator) Next() int {
	r.mu.Lock()
	i := r.carousel.Next()
	r.mu.Unlock()
	r.publish(i)
	return i
}

func (r *Rotator) Prev() int {
	r.mu.Lock()
	i := r.carousel.Prev()
	r.mu.Unlock()
	r.publish(i)
	return i
}

// Run advances on every tick until ctx is done.
func (r *Rotator) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.resumed:
			ticker.Reset(r.interval)
		case <-ticker.C:
			if r.Paused() {
				continue
			}
			r.Next()
		}
	}
}

func (r *Rotator) publish(i int) {
	for {
		select {
		case r.updates <- i:
			return
		default:
		}
		select {
		case <-r.updates:
		default:
		}
	}
}
