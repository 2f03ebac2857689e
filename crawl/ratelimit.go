package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/vsalmi/tapio"
	"golang.org/x/time/rate"
)

var _ tapio.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces a minimum delay between requests to the same
// host using token buckets. Each host gets its own limiter, so requests
// to different hosts proceed independently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	interval time.Duration
}

// NewDomainLimiter creates a new DomainLimiter with the given minimum
// interval between requests to one host. A zero or negative interval
// disables limiting. Burst is 1, so the delay applies to every request.
func NewDomainLimiter(interval time.Duration) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		interval: interval,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.interval <= 0 {
		return ctx.Err()
	}

	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(d.interval), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
