package mock

import "github.com/vsalmi/tapio"

var _ tapio.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of tapio.Extractor.
type Extractor struct {
	ExtractFn func(site *tapio.Site, sourceURL, html string, depth int) (*tapio.ExtractionResult, error)
}

func (e *Extractor) Extract(site *tapio.Site, sourceURL, html string, depth int) (*tapio.ExtractionResult, error) {
	return e.ExtractFn(site, sourceURL, html, depth)
}
