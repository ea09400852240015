package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/wardrobe"
	"github.com/fwojciec/wardrobe/batch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Garments  wardrobe.GarmentService
	Fetcher   wardrobe.Fetcher
	Trimmer   wardrobe.Trimmer
	Images    wardrobe.ImageLoader
	Extractor wardrobe.Extractor
	Sitemaps  wardrobe.SitemapService
	Runner    *batch.Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug  bool `help:"Log fetches and model calls to stderr"`
	Strict bool `help:"Reject replies with values outside the enumerations"`

	Page   PageCmd   `cmd:"" help:"Extract clothing metadata from a product page URL"`
	HTML   HTMLCmd   `cmd:"" name:"html" help:"Extract clothing metadata from a saved HTML file"`
	Image  ImageCmd  `cmd:"" help:"Extract clothing metadata from a garment photo"`
	Ingest IngestCmd `cmd:"" help:"Extract and save many product pages or photos"`
	List   ListCmd   `cmd:"" help:"List saved garments"`
	Show   ShowCmd   `cmd:"" help:"Show a saved garment"`
	Delete DeleteCmd `cmd:"" help:"Delete a saved garment"`
}

// FetchFlags select how product pages are fetched and trimmed.
type FetchFlags struct {
	Browser bool   `help:"Render pages in headless Chrome"`
	Trim    string `default:"main" enum:"main,trafilatura,readability,none" help:"Reduce page HTML before extraction (main, trafilatura, readability, none)"`
}

// PageCmd is the "page" subcommand.
type PageCmd struct {
	FetchFlags `embed:""`

	URL  string `arg:"" help:"Product page URL"`
	Save bool   `help:"Save the record to the database"`
}

// HTMLCmd is the "html" subcommand.
type HTMLCmd struct {
	Trim string `default:"main" enum:"main,trafilatura,readability,none" help:"Reduce page HTML before extraction (main, trafilatura, readability, none)"`
	File string `arg:"" help:"HTML file, or - for stdin"`
	URL  string `help:"Source URL to record for clothing pages"`
	Save bool   `help:"Save the record to the database"`
}

// ImageCmd is the "image" subcommand.
type ImageCmd struct {
	File string `arg:"" help:"Image file"`
	Save bool   `help:"Save the record to the database"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	FetchFlags `embed:""`

	Sources     []string `arg:"" optional:"" help:"Product page URLs, or image files with --images"`
	Images      bool     `help:"Treat sources as image files"`
	Sitemap     string   `help:"Discover product pages from this store's sitemap"`
	Filter      []string `short:"F" help:"Only include URLs matching regex (repeatable)"`
	Exclude     []string `short:"X" help:"Exclude URLs matching regex (repeatable)"`
	Preview     bool     `short:"p" help:"Show the sources without extracting"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extractions"`
	MaxTokens   int      `default:"500000" help:"Skip pages larger than this many tokens (0 disables)"`
	Out         string   `type:"path" help:"Also write each record as JSON under this directory"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Variant  string `help:"Only list garments of this variant (page or image)"`
	Clothing bool   `help:"Only list records identified as clothing"`
	Limit    int    `short:"n" default:"50" help:"Maximum number of garments to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Garment ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Garment ID"`
}
