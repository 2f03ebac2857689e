package mock

import "github.com/vsalmi/tapio"

var _ tapio.Converter = (*Converter)(nil)

// Converter is a mock implementation of tapio.Converter.
type Converter struct {
	ConvertFn func(html string, opts tapio.MarkdownOptions) (string, error)
}

func (c *Converter) Convert(html string, opts tapio.MarkdownOptions) (string, error) {
	return c.ConvertFn(html, opts)
}
