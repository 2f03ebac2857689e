package tapio

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Section represents a heading in a markdown document.
type Section struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

var headingRe = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

// ExtractSections parses markdown and returns all headings (H1-H6).
// It generates URL-safe anchors and handles duplicates with numeric suffixes.
func ExtractSections(markdown string) []Section {
	if markdown == "" {
		return nil
	}

	// Remove code blocks to avoid matching # in code
	cleaned := removeCodeBlocks(markdown)

	matches := headingRe.FindAllStringSubmatch(cleaned, -1)
	if len(matches) == 0 {
		return nil
	}

	sections := make([]Section, 0, len(matches))
	anchorCounts := make(map[string]int)

	for _, match := range matches {
		level := len(match[1])
		title := strings.TrimSpace(match[2])
		baseAnchor := generateAnchor(title)

		// Handle duplicates
		anchor := baseAnchor
		if count, exists := anchorCounts[baseAnchor]; exists {
			anchor = baseAnchor + "-" + strconv.Itoa(count)
			anchorCounts[baseAnchor]++
		} else {
			anchorCounts[baseAnchor] = 1
		}

		sections = append(sections, Section{
			Level:  level,
			Title:  title,
			Anchor: anchor,
		})
	}

	return sections
}

// MarkdownChunk is a contiguous run of markdown text with the heading
// hierarchy that was open where it starts.
type MarkdownChunk struct {
	Content string
	Headers map[string]string
}

// SplitMarkdown splits a markdown document into chunks for embedding.
// The document is cut at headings; sections longer than maxChars are cut
// again at paragraph boundaries. Each chunk carries the heading hierarchy
// open at its start (e.g., {"h1": "Permits", "h2": "Fees"}).
// A maxChars of 0 or less disables the size limit.
func SplitMarkdown(markdown string, maxChars int) []MarkdownChunk {
	if strings.TrimSpace(markdown) == "" {
		return nil
	}

	type openHeading struct {
		level int
		title string
	}

	var chunks []MarkdownChunk
	var open []openHeading
	var buf strings.Builder

	headersFor := func() map[string]string {
		if len(open) == 0 {
			return nil
		}
		h := make(map[string]string, len(open))
		for _, oh := range open {
			h["h"+strconv.Itoa(oh.level)] = oh.title
		}
		return h
	}

	flush := func(headers map[string]string) {
		content := strings.TrimSpace(buf.String())
		buf.Reset()
		if content == "" {
			return
		}
		if maxChars > 0 && len(content) > maxChars {
			for _, part := range splitByParagraph(content, maxChars) {
				chunks = append(chunks, MarkdownChunk{Content: part, Headers: headers})
			}
			return
		}
		chunks = append(chunks, MarkdownChunk{Content: content, Headers: headers})
	}

	inCode := false
	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCode = !inCode
		}

		if !inCode {
			if m := headingRe.FindStringSubmatch(line); m != nil {
				flush(headersFor())

				level := len(m[1])
				title := strings.TrimSpace(m[2])

				// Close deeper and equal headings
				for len(open) > 0 && open[len(open)-1].level >= level {
					open = open[:len(open)-1]
				}
				open = append(open, openHeading{level: level, title: title})

				buf.WriteString(line)
				buf.WriteString("\n")
				continue
			}
		}

		buf.WriteString(line)
		buf.WriteString("\n")
	}
	flush(headersFor())

	return chunks
}

// splitByParagraph cuts text at blank lines into pieces no longer than
// maxChars. A single paragraph longer than maxChars is kept whole rather
// than cut mid-sentence.
func splitByParagraph(text string, maxChars int) []string {
	paragraphs := strings.Split(text, "\n\n")

	var parts []string
	var buf strings.Builder
	for _, p := range paragraphs {
		if buf.Len() > 0 && buf.Len()+len(p)+2 > maxChars {
			parts = append(parts, strings.TrimSpace(buf.String()))
			buf.Reset()
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(p)
	}
	if s := strings.TrimSpace(buf.String()); s != "" {
		parts = append(parts, s)
	}
	return parts
}

// removeCodeBlocks removes fenced code blocks from markdown.
func removeCodeBlocks(s string) string {
	codeBlockRe := regexp.MustCompile("(?s)```.*?```")
	return codeBlockRe.ReplaceAllString(s, "")
}

// generateAnchor creates a URL-safe anchor from a title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func generateAnchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	result := sb.String()
	// Trim trailing hyphen
	return strings.TrimSuffix(result, "-")
}
