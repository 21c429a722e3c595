package scan

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/tabscout"
)

// Frontier configuration for recursive scanning.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// maxRecursiveScanURLs limits the number of URLs processed to prevent runaway scans.
	maxRecursiveScanURLs = 1000
)

// walkProcessor processes a URL and returns a scanResult.
type walkProcessor func(ctx context.Context, link tabscout.DiscoveredLink) scanResult

// walkResultHandler handles a completed scanResult.
// It should add discovered links to the frontier (after filtering) and handle the result.
type walkResultHandler func(result *scanResult, frontier *Frontier, parsedSourceURL *url.URL, pathPrefix string, urlFilter *tabscout.URLFilter)

// walkFrontier manages concurrent URL processing starting from sourceURL.
// It handles the shared logic between DiscoverURLs and recursiveScan:
// - Frontier management with Bloom filter deduplication
// - Concurrent worker pool
// - Work dispatch and result collection
//
// The processURL function is called for each URL to fetch and process it.
// The handleResult function is called for each result to filter links and handle the outcome.
func (s *Scanner) walkFrontier(
	ctx context.Context,
	sourceURL string,
	urlFilter *tabscout.URLFilter,
	processURL walkProcessor,
	handleResult walkResultHandler,
) error {
	// Parse source URL to get base path for scope limiting
	parsedSourceURL, err := url.Parse(sourceURL)
	if err != nil {
		return fmt.Errorf("invalid source URL: %w", err)
	}
	pathPrefix := parsedSourceURL.Path

	// Create frontier and seed with source URL
	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(tabscout.DiscoveredLink{
		URL:      sourceURL,
		Priority: tabscout.PriorityNavigation,
	})

	// Set up concurrency
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	// Channels for worker coordination
	workCh := make(chan tabscout.DiscoveredLink, concurrency)
	resultCh := make(chan scanResult)

	// Start worker pool
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for link := range workCh {
				result := processURL(ctx, link)
				select {
				case resultCh <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Close result channel when all workers are done
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// Coordinator loop
	processedCount := 0 // URLs dispatched to workers
	pending := 0        // URLs currently being processed
	var nextLink *tabscout.DiscoveredLink

	// Get first link
	if link, ok := frontier.Pop(); ok {
		nextLink = &link
	}

coordinatorLoop:
	for {
		// Check termination conditions
		if nextLink == nil && pending == 0 {
			break coordinatorLoop
		}

		// Check context cancellation
		if ctx.Err() != nil {
			break coordinatorLoop
		}

		// Try to dispatch work or receive results
		if nextLink != nil && processedCount < maxRecursiveScanURLs {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- *nextLink:
				processedCount++
				pending++
				nextLink = nil
			case scanRes := <-resultCh:
				pending--
				handleResult(&scanRes, frontier, parsedSourceURL, pathPrefix, urlFilter)
			}
		} else {
			// No more work to dispatch, just receive results
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case scanRes, ok := <-resultCh:
				if !ok {
					break coordinatorLoop
				}
				pending--
				handleResult(&scanRes, frontier, parsedSourceURL, pathPrefix, urlFilter)
			}
		}

		// Try to get next link if we don't have one
		if nextLink == nil && processedCount < maxRecursiveScanURLs {
			if link, ok := frontier.Pop(); ok {
				nextLink = &link
			}
		}
	}

	// Signal workers to stop and drain remaining results
	close(workCh)

	// Drain any remaining results with timeout
	drainTimeout := time.After(5 * time.Second)
drainLoop:
	for {
		select {
		case scanRes, ok := <-resultCh:
			if !ok {
				break drainLoop
			}
			handleResult(&scanRes, frontier, parsedSourceURL, pathPrefix, urlFilter)
		case <-drainTimeout:
			break drainLoop
		}
	}

	return nil
}

// recursiveScan performs recursive link-following when sitemap discovery
// yields nothing. It starts from the base URL and follows links within the
// path prefix scope. URLs are processed concurrently using walkFrontier.
func (s *Scanner) recursiveScan(ctx context.Context, baseURL string, urlFilter *tabscout.URLFilter, progress ProgressFunc) (*Result, error) {
	var result Result
	completedCount := 0

	// Result handler that saves scans and reports progress
	handleResult := func(scanRes *scanResult, frontier *Frontier, sourceURL *url.URL, pathPrefix string, filter *tabscout.URLFilter) {
		s.processRecursiveResult(ctx, scanRes, &result, &completedCount, progress, frontier, sourceURL, pathPrefix, filter)
	}

	err := s.walkFrontier(ctx, baseURL, urlFilter, s.processRecursiveURL, handleResult)
	if err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{
			Type: ProgressFinished,
		})
	}

	return &result, nil
}

// processRecursiveURL fetches and processes a single URL for recursive scanning.
func (s *Scanner) processRecursiveURL(ctx context.Context, link tabscout.DiscoveredLink) scanResult {
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
	if err := s.RateLimiter.Wait(ctx, linkURL.Host); err != nil {
		result.err = err
		return result
	}

	// Fetch with retry
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetchFn := func(ctx context.Context, url string) (string, error) {
		return s.Fetcher.Fetch(ctx, url)
	}
	html, err := FetchWithRetryDelays(ctx, link.URL, fetchFn, nil, delays)
	if err != nil {
		result.err = err
		return result
	}

	// Extract links (coordinator will filter for scope)
	if links, err := s.Links.ExtractLinks(html, link.URL); err == nil {
		result.discovered = links
	}

	title, groups, err := s.extractGroups(ctx, html)
	if err != nil {
		result.err = err
		return result
	}

	result.title = title
	result.groups = groups
	result.hash = contentHash(groups)

	return result
}

// processRecursiveResult handles a completed scan result from a worker.
func (s *Scanner) processRecursiveResult(
	ctx context.Context,
	scanRes *scanResult,
	result *Result,
	completedCount *int,
	progress ProgressFunc,
	frontier *Frontier,
	sourceURL *url.URL,
	pathPrefix string,
	urlFilter *tabscout.URLFilter,
) {
	// Add discovered links to frontier (after scope filtering)
	for _, discovered := range scanRes.discovered {
		discoveredURL, err := url.Parse(discovered.URL)
		if err != nil {
			continue
		}
		if discoveredURL.Host != sourceURL.Host {
			continue
		}
		if !strings.HasPrefix(discoveredURL.Path, pathPrefix) {
			continue
		}
		if urlFilter != nil && !matchesFilter(discovered.URL, urlFilter) {
			continue
		}
		frontier.Push(discovered)
	}

	if scanRes.err != nil {
		result.Failed++
		*completedCount++
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: *completedCount,
				URL:       scanRes.url,
				Error:     scanRes.err,
			})
		}
		return
	}

	if err := s.saveScanResult(ctx, scanRes, result); err != nil {
		result.Failed++
		*completedCount++
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: *completedCount,
				URL:       scanRes.url,
				Error:     err,
			})
		}
		return
	}

	*completedCount++
	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressCompleted,
			Completed: *completedCount,
			URL:       scanRes.url,
		})
	}
}

// matchesFilter checks if a URL matches the include patterns.
func matchesFilter(rawURL string, filter *tabscout.URLFilter) bool {
	if filter == nil || len(filter.Include) == 0 {
		return true
	}
	for _, re := range filter.Include {
		if re.MatchString(rawURL) {
			return true
		}
	}
	return false
}
