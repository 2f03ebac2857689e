// Package htmltomarkdown converts HTML to Markdown honoring per-site
// conversion options.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/vsalmi/tapio"
)

// Ensure Converter implements tapio.Converter at compile time.
var _ tapio.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
// Option handling that the underlying converter has no switch for
// (dropping links, images, tables) happens by pruning the HTML before
// conversion.
type Converter struct {
	full    *converter.Converter
	noTable *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{
		full: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		noTable: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string, opts tapio.MarkdownOptions) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", tapio.Errorf(tapio.EINVALID, "empty HTML input")
	}

	if opts.IgnoreLinks || opts.IgnoreImages || opts.IgnoreTables {
		pruned, err := prune(html, opts)
		if err != nil {
			return "", tapio.Errorf(tapio.EUNPARSABLE, "pruning HTML: %v", err)
		}
		html = pruned
	}

	conv := c.full
	if opts.IgnoreTables {
		conv = c.noTable
	}

	result, err := conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	if opts.WrapWidth > 0 {
		result = wrap(result, opts.WrapWidth)
	}

	return result, nil
}

// prune removes or unwraps elements the options exclude from the output.
// Links are unwrapped (their text survives); images and tables are
// removed entirely.
func prune(html string, opts tapio.MarkdownOptions) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	if opts.IgnoreLinks {
		doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
			sel.ReplaceWithNodes(sel.Contents().Nodes...)
		})
	}
	if opts.IgnoreImages {
		doc.Find("img, picture, figure img").Remove()
	}
	if opts.IgnoreTables {
		doc.Find("table").Remove()
	}

	return doc.Find("body").Html()
}

// wrap soft-wraps prose lines at the given column. Headings, list
// markers, tables, block quotes and code are left untouched so wrapping
// never changes Markdown structure.
func wrap(markdown string, width int) string {
	var out []string
	inCode := false

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			out = append(out, line)
			continue
		}
		if inCode || len(line) <= width || !isProse(trimmed) {
			out = append(out, line)
			continue
		}
		out = append(out, wrapLine(line, width)...)
	}

	return strings.Join(out, "\n")
}

// isProse reports whether a markdown line is plain prose that can be
// safely re-flowed.
func isProse(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	switch trimmed[0] {
	case '#', '>', '|', '-', '*', '+':
		return false
	}
	if len(trimmed) > 1 && trimmed[0] >= '0' && trimmed[0] <= '9' && (trimmed[1] == '.' || trimmed[1] == ')') {
		return false
	}
	return true
}

// wrapLine breaks one line into pieces no wider than width at word
// boundaries. Words longer than width stay on their own line.
func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	var lines []string
	var buf strings.Builder

	for _, word := range words {
		if buf.Len() > 0 && buf.Len()+1+len(word) > width {
			lines = append(lines, buf.String())
			buf.Reset()
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(word)
	}
	if buf.Len() > 0 {
		lines = append(lines, buf.String())
	}
	return lines
}
