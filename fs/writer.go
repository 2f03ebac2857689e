// Package fs provides file-based storage for crawled site content.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsalmi/tapio"
)

// URLToPath converts a page URL to a relative file path rooted at the
// site's hostname directory.
// Example: https://migri.fi/en/residence-permit → migri.fi/en/residence-permit.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Hostname() == "" {
		return "", tapio.Errorf(tapio.EINVALID, "URL %q has no host", rawURL)
	}

	path := u.Path

	// Root or trailing slash becomes index.md
	if path == "" || path == "/" {
		return filepath.Join(u.Hostname(), "index.md"), nil
	}

	path = strings.TrimPrefix(path, "/")

	if strings.HasSuffix(path, "/") {
		return filepath.Join(u.Hostname(), path, "index.md"), nil
	}

	return filepath.Join(u.Hostname(), path+".md"), nil
}

// FormatDocument formats a document with YAML frontmatter.
func FormatDocument(doc *tapio.Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(doc.SourceURL)
	b.WriteString("\ntitle: ")
	b.WriteString(doc.Title)
	b.WriteString("\nsite: ")
	b.WriteString(doc.SiteKey)
	b.WriteString("\ncrawled: ")
	b.WriteString(doc.FetchedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Content)
	return b.String()
}

// Ensure Writer implements tapio.DocumentWriter at compile time.
var _ tapio.DocumentWriter = (*Writer)(nil)

// Writer writes documents as markdown files under a content directory.
// Each site's pages land in a subdirectory named after its hostname.
type Writer struct {
	contentDir string
}

// NewWriter creates a new Writer that writes to the given content directory.
func NewWriter(contentDir string) *Writer {
	return &Writer{contentDir: contentDir}
}

// CreateDocument writes a document to disk as a markdown file and records
// the relative path in doc.FilePath.
func (w *Writer) CreateDocument(ctx context.Context, doc *tapio.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(doc.SourceURL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.contentDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(fullPath, []byte(FormatDocument(doc)), 0644); err != nil {
		return err
	}

	doc.FilePath = relPath
	return nil
}
