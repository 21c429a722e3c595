package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tabscout"
	"github.com/fwojciec/tabscout/etree"
	"github.com/fwojciec/tabscout/goquery"
	tabhtml "github.com/fwojciec/tabscout/html"
	"github.com/fwojciec/tabscout/htmltomarkdown"
	tabhttp "github.com/fwojciec/tabscout/http"
	"github.com/fwojciec/tabscout/readability"
	"github.com/fwojciec/tabscout/rod"
	"github.com/fwojciec/tabscout/scan"
	tabslog "github.com/fwojciec/tabscout/slog"
	"github.com/fwojciec/tabscout/sqlite"
	"github.com/fwojciec/tabscout/trafilatura"
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

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ScanService  tabscout.ScanService
	GroupService tabscout.GroupService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tabscout"),
		kong.Description("Find and rank tabular groups in markup pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tabscout --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set TABSCOUT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.ScanService = sqlite.NewScanService(m.DB)
	m.GroupService = sqlite.NewGroupService(m.DB)
	deps.DB = m.DB
	deps.Scans = m.ScanService
	deps.Groups = m.GroupService
	deps.Sitemaps = tabhttp.NewSitemapService(nil)

	// Wire fetching and extraction for the scan command
	if cmd == "scan" {
		timeout := cli.Scan.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}

		var logger *slog.Logger
		if cli.Scan.Verbose {
			logger = slog.New(slog.NewTextHandler(stderr, nil))
		}

		var refiner tabscout.Refiner
		switch cli.Scan.Refine {
		case "readability":
			refiner = readability.NewRefiner()
		case "none":
			refiner = nil
		default:
			refiner = trafilatura.NewRefiner()
		}

		httpFetcher := tabhttp.NewFetcher(tabhttp.WithTimeout(timeout))
		var fetcher tabscout.Fetcher = httpFetcher

		switch cli.Scan.Browser {
		case "rod":
			rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(timeout))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer rodFetcher.Close()
			fetcher = rodFetcher
		case "http":
			// Plain HTTP fetching, no browser involved.
		default:
			// Probe whether the page needs a browser. Without Chrome
			// available the HTTP fetcher serves everything.
			rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(timeout))
			if err == nil {
				defer rodFetcher.Close()
				probeRefiner := refiner
				if probeRefiner == nil {
					probeRefiner = trafilatura.NewRefiner()
				}
				fetcher = ProbeFetcher(ctx, cli.Scan.URL, httpFetcher, rodFetcher, probeRefiner)
			}
		}

		var links tabscout.LinkExtractor = goquery.NewLinkExtractor()
		if logger != nil {
			fetcher = tabslog.NewLoggingFetcher(fetcher, logger)
			links = tabslog.NewLoggingLinkExtractor(links, logger)
			deps.Sitemaps = tabslog.NewLoggingSitemapService(deps.Sitemaps, logger)
		}

		deps.Fetcher = fetcher
		deps.Links = links
		deps.RateLimiter = scan.NewDomainLimiter(1.0)

		var pageParser tabscout.Parser = tabhtml.NewParser()
		if cli.Scan.XML {
			pageParser = etree.NewParser()
		}
		if logger != nil {
			pageParser = tabslog.NewLoggingParser(pageParser, logger)
		}

		if !cli.Scan.Preview {
			deps.Scanner = &scan.Scanner{
				Sitemaps:    deps.Sitemaps,
				Fetcher:     fetcher,
				Refiner:     refiner,
				Parser:      pageParser,
				Converter:   htmltomarkdown.NewConverter(),
				Renderer:    tabhtml.NewRenderer(),
				Scans:       m.ScanService,
				Groups:      m.GroupService,
				Links:       links,
				RateLimiter: deps.RateLimiter,
				Selects:     goquery.NewSource(),
				Concurrency: cli.Scan.Concurrency,
			}
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("TABSCOUT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "tabscout.db"
	}
	dir := filepath.Join(home, ".tabscout")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "tabscout.db")
}
