package slog

import (
	"log/slog"
	"time"

	"github.com/vsalmi/tapio"
)

// Ensure LoggingExtractor implements tapio.Extractor.
var _ tapio.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   tapio.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next tapio.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(site *tapio.Site, sourceURL, html string, depth int) (result *tapio.ExtractionResult, err error) {
	defer func(begin time.Time) {
		links := 0
		bytes := 0
		if result != nil {
			links = len(result.Links)
			bytes = len(result.Markdown)
		}
		e.logger.Info("extract",
			"site", site.Key,
			"url", sourceURL,
			"links", links,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(site, sourceURL, html, depth)
}
