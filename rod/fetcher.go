// Package rod provides a browser-based implementation of tapio.Fetcher
// for sites that require JavaScript rendering.
package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/vsalmi/tapio"
)

// DefaultRenderDelay is how long to wait after page load for client-side
// rendering to settle before capturing HTML.
const DefaultRenderDelay = 500 * time.Millisecond

// Ensure Fetcher implements tapio.Fetcher at compile time.
var _ tapio.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager     *BrowserManager
	renderDelay time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithRenderDelay sets how long to wait after page load before capturing
// HTML. Defaults to DefaultRenderDelay (500ms).
func WithRenderDelay(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// NewFetcher creates a new Fetcher backed by a managed headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}

	f := &Fetcher{
		manager:     manager,
		renderDelay: DefaultRenderDelay,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if f.renderDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.renderDelay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}
	f.manager.IncrementPageCount()

	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
