package htmltomarkdown_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsalmi/tapio"
	"github.com/vsalmi/tapio/htmltomarkdown"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic HTML to markdown", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		got, err := c.Convert("<h1>Permits</h1><p>Apply <strong>online</strong>.</p>", tapio.MarkdownOptions{})

		require.NoError(t, err)
		assert.Contains(t, got, "# Permits")
		assert.Contains(t, got, "**online**")
	})

	t.Run("keeps links by default", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		got, err := c.Convert(`<p><a href="https://migri.fi/en">Migri</a></p>`, tapio.MarkdownOptions{})

		require.NoError(t, err)
		assert.Contains(t, got, "[Migri](https://migri.fi/en)")
	})

	t.Run("ignore links keeps the link text", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		got, err := c.Convert(`<p><a href="https://migri.fi/en">Migri</a></p>`,
			tapio.MarkdownOptions{IgnoreLinks: true})

		require.NoError(t, err)
		assert.Contains(t, got, "Migri")
		assert.NotContains(t, got, "https://migri.fi/en")
	})

	t.Run("ignore images drops images", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		got, err := c.Convert(`<p>text</p><img src="https://migri.fi/logo.png" alt="logo">`,
			tapio.MarkdownOptions{IgnoreImages: true})

		require.NoError(t, err)
		assert.Contains(t, got, "text")
		assert.NotContains(t, got, "logo.png")
	})

	t.Run("ignore tables drops tables", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		got, err := c.Convert(`<p>before</p><table><tr><td>cell</td></tr></table>`,
			tapio.MarkdownOptions{IgnoreTables: true})

		require.NoError(t, err)
		assert.Contains(t, got, "before")
		assert.NotContains(t, got, "cell")
	})

	t.Run("converts tables when not ignored", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		got, err := c.Convert(`<table><tr><th>Fee</th></tr><tr><td>EUR 100</td></tr></table>`,
			tapio.MarkdownOptions{})

		require.NoError(t, err)
		assert.Contains(t, got, "| Fee |")
		assert.Contains(t, got, "EUR 100")
	})

	t.Run("wrap width re-flows long prose lines", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()
		long := "<p>" + strings.Repeat("word ", 40) + "</p>"

		got, err := c.Convert(long, tapio.MarkdownOptions{WrapWidth: 40})

		require.NoError(t, err)
		for _, line := range strings.Split(got, "\n") {
			assert.LessOrEqual(t, len(line), 40)
		}
	})

	t.Run("wrapping leaves headings alone", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()
		heading := "<h1>" + strings.Repeat("word ", 20) + "</h1>"

		got, err := c.Convert(heading, tapio.MarkdownOptions{WrapWidth: 20})

		require.NoError(t, err)
		headingLines := 0
		for _, line := range strings.Split(got, "\n") {
			if strings.HasPrefix(line, "# ") {
				headingLines++
			}
		}
		assert.Equal(t, 1, headingLines)
	})

	t.Run("empty input is EINVALID", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		_, err := c.Convert("   ", tapio.MarkdownOptions{})

		assert.Equal(t, tapio.EINVALID, tapio.ErrorCode(err))
	})
}
