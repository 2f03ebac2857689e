package mock

import "github.com/vsalmi/tapio"

var _ tapio.SiteRegistry = (*SiteRegistry)(nil)

// SiteRegistry is a mock implementation of tapio.SiteRegistry.
type SiteRegistry struct {
	SiteFn  func(key string) (*tapio.Site, error)
	SitesFn func() []*tapio.Site
}

func (r *SiteRegistry) Site(key string) (*tapio.Site, error) {
	return r.SiteFn(key)
}

func (r *SiteRegistry) Sites() []*tapio.Site {
	return r.SitesFn()
}
