package scan

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/tabscout"
)

// DiscoverOption configures DiscoverURLs behavior.
type DiscoverOption func(*discoverConfig)

type discoverConfig struct {
	concurrency int
	retryDelays []time.Duration
	onURL       func(url string)
}

// WithConcurrency sets the number of concurrent workers for URL discovery.
// Defaults to 3 if not specified (lower than a full scan to avoid overwhelming browsers).
func WithConcurrency(n int) DiscoverOption {
	return func(c *discoverConfig) {
		c.concurrency = n
	}
}

// WithRetryDelays sets the retry delays for failed fetches.
// Defaults to DefaultRetryDelays() if not specified.
func WithRetryDelays(delays []time.Duration) DiscoverOption {
	return func(c *discoverConfig) {
		c.retryDelays = delays
	}
}

// WithOnURL sets a callback invoked for each URL as it is discovered, before
// the full result is available. The callback runs on the coordinator
// goroutine, so it needs no synchronization of its own.
func WithOnURL(fn func(url string)) DiscoverOption {
	return func(c *discoverConfig) {
		c.onURL = fn
	}
}

// DiscoverURLs recursively discovers URLs by following links within the path
// prefix scope of the source URL. This backs preview mode when sitemap
// discovery returns no URLs: it reports what a site scan would visit without
// scanning anything.
//
// Discovery stops after processing maxRecursiveScanURLs (1000) URLs
// to prevent runaway walks on large sites.
func DiscoverURLs(
	ctx context.Context,
	sourceURL string,
	urlFilter *tabscout.URLFilter,
	fetcher tabscout.Fetcher,
	links tabscout.LinkExtractor,
	rateLimiter tabscout.DomainLimiter,
	opts ...DiscoverOption,
) ([]string, error) {
	// Apply options
	cfg := &discoverConfig{
		concurrency: 3, // Lower default for preview mode
		retryDelays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// Create a minimal Scanner with just the dependencies needed for discovery
	s := &Scanner{
		Fetcher:     fetcher,
		Links:       links,
		RateLimiter: rateLimiter,
		Concurrency: cfg.concurrency,
		RetryDelays: cfg.retryDelays,
	}

	// Collected URLs (handleResult is called sequentially from coordinator)
	var urls []string

	// Discovery processor: fetch page and extract links (no group extraction)
	processURL := func(ctx context.Context, link tabscout.DiscoveredLink) scanResult {
		result := scanResult{
			url: link.URL,
		}

		// Parse URL for rate limiting
		linkURL, err := url.Parse(link.URL)
		if err != nil {
			result.err = err
			return result
		}

		// Rate limit
		if err := rateLimiter.Wait(ctx, linkURL.Host); err != nil {
			result.err = err
			return result
		}

		// Fetch page with retry
		fetchFn := func(ctx context.Context, url string) (string, error) {
			return fetcher.Fetch(ctx, url)
		}
		html, err := FetchWithRetryDelays(ctx, link.URL, fetchFn, nil, cfg.retryDelays)
		if err != nil {
			result.err = err
			return result
		}

		// Extract links for frontier
		if discovered, err := links.ExtractLinks(html, link.URL); err == nil {
			result.discovered = discovered
		}

		return result
	}

	// Discovery handler: collect URLs and add links to frontier
	handleResult := func(result *scanResult, frontier *Frontier, parsedSourceURL *url.URL, pathPrefix string, filter *tabscout.URLFilter) {
		// Add discovered links to frontier (after scope filtering)
		for _, discovered := range result.discovered {
			discoveredURL, err := url.Parse(discovered.URL)
			if err != nil {
				continue
			}
			if discoveredURL.Host != parsedSourceURL.Host {
				continue
			}
			if !strings.HasPrefix(discoveredURL.Path, pathPrefix) {
				continue
			}
			if filter != nil && !matchesFilter(discovered.URL, filter) {
				continue
			}
			frontier.Push(discovered)
		}

		// Collect successfully fetched URLs
		if result.err == nil {
			urls = append(urls, result.url)
			if cfg.onURL != nil {
				cfg.onURL(result.url)
			}
		}
	}

	err := s.walkFrontier(ctx, sourceURL, urlFilter, processURL, handleResult)
	if err != nil {
		return nil, err
	}

	return urls, nil
}
