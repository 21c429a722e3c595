package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/tabscout"
	"github.com/fwojciec/tabscout/scan"
	"github.com/fwojciec/tabscout/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	DB     *sqlite.DB
	Scans  tabscout.ScanService
	Groups tabscout.GroupService

	// Discovery dependencies, used by preview mode.
	Sitemaps    tabscout.SitemapService
	Fetcher     tabscout.Fetcher
	Links       tabscout.LinkExtractor
	RateLimiter tabscout.DomainLimiter

	Scanner *scan.Scanner

	// Store overrides the export target. Nil exports to a directory built
	// from the export command's flags.
	Store tabscout.GroupStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scan   ScanCmd   `cmd:"" help:"Scan a page or site for tabular groups"`
	List   ListCmd   `cmd:"" help:"List saved scans"`
	Show   ShowCmd   `cmd:"" help:"Show the ranked groups of a scan"`
	Delete DeleteCmd `cmd:"" help:"Delete a scan and its groups"`
	Export ExportCmd `cmd:"" help:"Export a scan's groups as Markdown files"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	URL         string        `arg:"" help:"Page or site URL to scan"`
	Site        bool          `short:"s" help:"Scan the whole site via sitemap discovery"`
	Preview     bool          `short:"p" help:"Show URLs a site scan would visit without scanning"`
	Filter      []string      `short:"F" name:"filter" help:"Filter URLs by regex (repeatable)"`
	Selector    string        `help:"Restrict extraction to subtrees matching a CSS selector"`
	Label       []string      `help:"Only rank parents with one of these labels (repeatable)"`
	Within      string        `help:"Only rank parents under an ancestor with this label"`
	MinChildren int           `name:"min-children" help:"Only rank parents with at least this many children"`
	Top         int           `short:"t" help:"Store only the strongest N groups per page"`
	Browser     string        `enum:"auto,http,rod" default:"auto" help:"Fetch strategy: probe the page (auto), plain HTTP, or a headless browser (rod)"`
	Refine      string        `enum:"trafilatura,readability,none" default:"trafilatura" help:"Narrow pages to their main content before scanning"`
	XML         bool          `help:"Parse pages as XML instead of HTML"`
	Workers     int           `short:"w" help:"Extraction worker count per page (0 extracts sequentially)"`
	Concurrency int           `short:"c" default:"10" help:"Concurrent fetch limit for site scans"`
	Timeout     time.Duration `default:"10s" help:"Fetch timeout per page"`
	Verbose     bool          `short:"v" help:"Log fetch and discovery details to stderr"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ScanID string `arg:"" help:"Scan ID"`
	Full   bool   `help:"Show full group content as Markdown"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ScanID string `arg:"" help:"Scan ID"`
	Force  bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ScanID string `arg:"" help:"Scan ID to export"`
	Dir    string `short:"d" default:"." help:"Base directory for the export"`
	Name   string `short:"n" help:"Output directory name (defaults to the scan ID)"`
}
