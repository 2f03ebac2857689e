package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsalmi/tapio"
	"github.com/vsalmi/tapio/mock"
	tapioslog "github.com/vsalmi/tapio/slog"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs site, links and bytes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(site *tapio.Site, sourceURL, html string, depth int) (*tapio.ExtractionResult, error) {
				return &tapio.ExtractionResult{
					Markdown: "# Title",
					Links:    []string{"https://migri.fi/en/a"},
				}, nil
			},
		}

		extractor := tapioslog.NewLoggingExtractor(inner, logger)
		site := &tapio.Site{Key: "migri"}

		result, err := extractor.Extract(site, "https://migri.fi/en", "<html></html>", 0)

		require.NoError(t, err)
		require.NotNil(t, result)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "site=migri")
		assert.Contains(t, output, "links=1")
		assert.Contains(t, output, "bytes=7")
	})

	t.Run("logs extraction errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(site *tapio.Site, sourceURL, html string, depth int) (*tapio.ExtractionResult, error) {
				return nil, tapio.Errorf(tapio.ENOCONTENT, "no content matched")
			},
		}

		extractor := tapioslog.NewLoggingExtractor(inner, logger)
		site := &tapio.Site{Key: "migri"}

		_, err := extractor.Extract(site, "https://migri.fi/en", "<html></html>", 0)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "no content matched")
	})
}
