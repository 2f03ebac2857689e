package mock

import (
	"context"

	"github.com/vsalmi/tapio"
)

var _ tapio.URLFrontier = (*Frontier)(nil)

// Frontier is a mock implementation of tapio.URLFrontier.
type Frontier struct {
	PushFn func(link tapio.DiscoveredLink) bool
	PopFn  func() (tapio.DiscoveredLink, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *Frontier) Push(link tapio.DiscoveredLink) bool {
	return f.PushFn(link)
}

func (f *Frontier) Pop() (tapio.DiscoveredLink, bool) {
	return f.PopFn()
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

func (f *Frontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ tapio.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of tapio.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
