package main

import (
	"context"
	"io"

	"github.com/vsalmi/tapio"
	"github.com/vsalmi/tapio/crawl"
	"github.com/vsalmi/tapio/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Sites     tapio.SiteRegistry
	Documents tapio.DocumentService
	Chunks    tapio.ChunkService
	Search    tapio.SearchService
	Embedder  tapio.Embedder
	Asker     tapio.Asker
	Crawler   *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Sites     SitesCmd     `cmd:"" help:"Inspect configured sites"`
	Crawl     CrawlCmd     `cmd:"" help:"Crawl a configured site and store its pages"`
	Vectorize VectorizeCmd `cmd:"" help:"Chunk and embed a site's crawled pages"`
	Ask       AskCmd       `cmd:"" help:"Ask a question about a site's content"`
	Docs      DocsCmd      `cmd:"" help:"List crawled documents for a site"`
	Delete    DeleteCmd    `cmd:"" help:"Delete a site's documents and chunks"`
}

// SitesCmd groups the "sites" subcommands.
type SitesCmd struct {
	List SitesListCmd `cmd:"" default:"1" help:"List all configured sites"`
	Info SitesInfoCmd `cmd:"" help:"Show the resolved configuration for a site"`
}

// SitesListCmd is the "sites list" subcommand.
type SitesListCmd struct{}

// SitesInfoCmd is the "sites info" subcommand.
type SitesInfoCmd struct {
	Site string `arg:"" help:"Site key"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Site    string `arg:"" help:"Site key"`
	Depth   int    `short:"d" default:"-1" help:"Override the configured crawl depth"`
	Verbose bool   `short:"v" help:"Print each crawled URL"`
}

// VectorizeCmd is the "vectorize" subcommand.
type VectorizeCmd struct {
	Site string `arg:"" help:"Site key"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Site     string `arg:"" help:"Site key"`
	Question string `arg:"" help:"Question to ask about the site's content"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Site string `arg:"" help:"Site key"`
	Full bool   `help:"Show full document content"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Site  string `arg:"" help:"Site key"`
	Force bool   `help:"Confirm deletion"`
}
