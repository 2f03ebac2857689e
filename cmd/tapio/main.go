// Command tapio crawls configured websites, converts their pages to
// Markdown, indexes the content with embeddings and answers questions
// about it.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/vsalmi/tapio"
	"github.com/vsalmi/tapio/crawl"
	"github.com/vsalmi/tapio/fs"
	"github.com/vsalmi/tapio/gemini"
	"github.com/vsalmi/tapio/goquery"
	"github.com/vsalmi/tapio/htmltomarkdown"
	tapiohttp "github.com/vsalmi/tapio/http"
	"github.com/vsalmi/tapio/rod"
	tapioslog "github.com/vsalmi/tapio/slog"
	"github.com/vsalmi/tapio/sqlite"
	"github.com/vsalmi/tapio/yaml"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Site configuration path. Empty means the embedded defaults.
	ConfigPath string

	// Directory where crawled Markdown files are written.
	ContentDir string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SiteRegistry    tapio.SiteRegistry
	DocumentService tapio.DocumentService
	ChunkService    tapio.ChunkService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ConfigPath: os.Getenv("TAPIO_SITES"),
		ContentDir: defaultContentDir(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tapio"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tapio --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Site configuration is loaded for every command; invalid configuration
	// is fatal before any work starts.
	registry, err := yaml.NewRegistryFromFile(m.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set TAPIO_SITES to point at a valid sites.yaml\n")
		return err
	}
	m.SiteRegistry = registry
	deps.Sites = registry

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set TAPIO_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.DocumentService = sqlite.NewDocumentService(m.DB)
	m.ChunkService = sqlite.NewChunkService(m.DB)
	deps.DB = m.DB
	deps.Documents = m.DocumentService
	deps.Chunks = m.ChunkService

	if cmd == "crawl" {
		site, err := registry.Site(cli.Crawl.Site)
		if err != nil {
			fmt.Fprintf(stderr, "error: unknown site %q. Run 'tapio sites' to see configured sites.\n", cli.Crawl.Site)
			return err
		}

		fetcher, err := newFetcher(site)
		if err != nil {
			if site.RenderJS {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for render_js sites")
			}
			return err
		}
		defer fetcher.Close()

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		if cli.Crawl.Verbose {
			logger = slog.New(slog.NewTextHandler(stderr, nil))
		}

		tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		converter := htmltomarkdown.NewConverter()

		deps.Crawler = &crawl.Crawler{
			Fetcher:      tapioslog.NewLoggingFetcher(fetcher, logger),
			Extractor:    tapioslog.NewLoggingExtractor(goquery.NewExtractor(converter, goquery.WithLogger(logger)), logger),
			Documents:    m.DocumentService,
			Writer:       fs.NewWriter(m.ContentDir),
			Sitemaps:     tapioslog.NewLoggingSitemapService(tapiohttp.NewSitemapService(nil), logger),
			TokenCounter: tokenCounter,
		}
	}

	if cmd == "vectorize" || cmd == "ask" {
		client, err := newGeminiClient(ctx, stderr)
		if err != nil {
			return err
		}

		deps.Embedder = gemini.NewEmbedder(client)
		deps.Search = sqlite.NewSearchService(m.DB, deps.Embedder)

		if cmd == "ask" {
			deps.Asker = gemini.NewAsker(client, deps.Search)
		}
	}

	return kongCtx.Run(deps)
}

// newFetcher picks the fetcher implementation based on the site's
// render_js setting.
func newFetcher(site *tapio.Site) (tapio.Fetcher, error) {
	if site.RenderJS {
		return rod.NewFetcher()
	}
	return tapiohttp.NewFetcher(), nil
}

// newGeminiClient creates a Gemini API client from the environment.
func newGeminiClient(ctx context.Context, stderr io.Writer) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	return client, nil
}

// tokenizerModel is used for token counting during crawls.
const tokenizerModel = "gemini-2.5-flash"

func defaultDBPath() string {
	if path := os.Getenv("TAPIO_DB"); path != "" {
		return path
	}
	dir := tapioHome()
	return filepath.Join(dir, "tapio.db")
}

func defaultContentDir() string {
	if path := os.Getenv("TAPIO_CONTENT"); path != "" {
		return path
	}
	return filepath.Join(tapioHome(), "content")
}

func tapioHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	dir := filepath.Join(home, ".tapio")
	_ = os.MkdirAll(dir, 0755)
	return dir
}
