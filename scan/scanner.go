// Package scan provides scan orchestration. It coordinates URL discovery,
// fetching, optional content refinement, group extraction, and storage of
// ranked groups.
package scan

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/tabscout"
	"golang.org/x/sync/errgroup"
)

// Scanner orchestrates scanning pages for tabular groups.
type Scanner struct {
	Sitemaps    tabscout.SitemapService
	Fetcher     tabscout.Fetcher
	Refiner     tabscout.Refiner // optional, narrows markup to main content
	Parser      tabscout.Parser
	Converter   tabscout.Converter
	Renderer    tabscout.Renderer
	Scans       tabscout.ScanService
	Groups      tabscout.GroupService
	Links       tabscout.LinkExtractor // enables recursive fallback discovery
	RateLimiter tabscout.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration

	// Scope restricts which parents become candidates. Nil scans everything.
	Scope tabscout.Scope

	// Selects narrows markup to the subtrees matching Selector before
	// extraction. Both must be set for selector scoping to apply; the page
	// title then comes from the refiner alone.
	Selects  tabscout.Selector
	Selector string

	// TopGroups limits how many ranked groups are stored per page.
	// Zero stores all of them.
	TopGroups int

	// ExtractWorkers fans candidate scoring out over a worker pool when
	// greater than one. The ranking is identical either way.
	ExtractWorkers int
}

// Result holds the outcome of a site scan.
type Result struct {
	Scanned int // pages scanned and saved
	Groups  int // groups stored across all pages
	Failed  int
	Bytes   int // stored Markdown bytes
}

// ProgressEvent reports progress during a site scan.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scan progress.
type ProgressFunc func(event ProgressEvent)

// scanResult holds the outcome of processing a single URL.
type scanResult struct {
	position   int
	url        string
	title      string
	hash       string
	groups     []*tabscout.Group
	discovered []tabscout.DiscoveredLink
	err        error
}

// ScanPage scans a single page and persists the scan with its ranked groups.
// A page with no groups is still a valid scan with a group count of zero.
func (s *Scanner) ScanPage(ctx context.Context, pageURL string) (*tabscout.Scan, []*tabscout.Group, error) {
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetchFn := func(ctx context.Context, url string) (string, error) {
		return s.Fetcher.Fetch(ctx, url)
	}
	html, err := FetchWithRetryDelays(ctx, pageURL, fetchFn, nil, delays)
	if err != nil {
		return nil, nil, err
	}

	title, groups, err := s.extractGroups(ctx, html)
	if err != nil {
		return nil, nil, err
	}

	scan := &tabscout.Scan{
		SourceURL:   pageURL,
		Title:       title,
		ContentHash: contentHash(groups),
		GroupCount:  len(groups),
	}
	if err := s.Scans.CreateScan(ctx, scan); err != nil {
		return nil, nil, err
	}

	for _, group := range groups {
		group.ScanID = scan.ID
		if err := s.Groups.CreateGroup(ctx, group); err != nil {
			return nil, nil, err
		}
	}

	return scan, groups, nil
}

// ScanSite scans all pages of a site discovered from its sitemap and saves a
// scan per page. When the sitemap yields nothing and link extraction is
// configured, it falls back to recursive link-following from the base URL.
// The progress callback, if provided, receives events as scanning proceeds.
func (s *Scanner) ScanSite(ctx context.Context, baseURL string, urlFilter *tabscout.URLFilter, progress ProgressFunc) (*Result, error) {
	// Discover URLs from sitemap
	urls, err := s.Sitemaps.DiscoverURLs(ctx, baseURL, urlFilter)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}

	if len(urls) == 0 {
		// Fall back to recursive link-following if configured
		if s.Links != nil && s.RateLimiter != nil {
			return s.recursiveScan(ctx, baseURL, urlFilter, progress)
		}
		return &Result{}, nil
	}

	// Set up concurrency
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	// Channel for collecting results
	resultCh := make(chan scanResult, len(urls))

	// Progress tracking
	var completed atomic.Int64
	total := len(urls)

	// Notify start
	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	// Start workers
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			i, url := i, url
			g.Go(func() error {
				result := s.processURL(gctx, i, url)
				resultCh <- result
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	results := make([]scanResult, len(urls))
	var failedCount int
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if result.err != nil {
			failedCount++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       result.url,
					Error:     result.err,
				})
			}
		} else {
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressCompleted,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       result.url,
				})
			}
		}
	}

	// Save scans in document order and accumulate stats
	result := Result{Failed: failedCount}
	for i := range results {
		if results[i].err != nil {
			continue
		}
		if err := s.saveScanResult(ctx, &results[i], &result); err != nil {
			result.Failed++
		}
	}

	// Notify finished
	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &result, nil
}

// processURL fetches and processes a single URL.
func (s *Scanner) processURL(ctx context.Context, position int, url string) scanResult {
	result := scanResult{
		position: position,
		url:      url,
	}

	// Fetch with retry
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetchFn := func(ctx context.Context, url string) (string, error) {
		return s.Fetcher.Fetch(ctx, url)
	}
	html, err := FetchWithRetryDelays(ctx, url, fetchFn, nil, delays)
	if err != nil {
		result.err = err
		return result
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

// extractGroups runs the extraction pipeline on fetched markup: optional
// refinement, parsing, ranked extraction, and Markdown rendering of the top
// groups.
func (s *Scanner) extractGroups(ctx context.Context, pageHTML string) (string, []*tabscout.Group, error) {
	var title string
	markup := pageHTML

	// Refinement narrows the markup to the main content region. A refiner
	// failure falls back to scanning the whole page.
	if s.Refiner != nil {
		if refined, err := s.Refiner.Refine(pageHTML); err == nil && refined.ContentHTML != "" {
			title = refined.Title
			markup = refined.ContentHTML
		}
	}

	var ranking tabscout.Ranking
	var err error
	if s.Selects != nil && s.Selector != "" {
		ranking, err = s.extractSelected(ctx, markup)
		if err != nil {
			return "", nil, err
		}
	} else {
		root, err := s.Parser.Parse(markup)
		if err != nil {
			return "", nil, err
		}
		if title == "" {
			title = pageTitle(root)
		}

		if s.ExtractWorkers > 1 {
			ranking, err = ExtractParallel(ctx, root, s.Scope, s.ExtractWorkers)
		} else {
			ranking, err = tabscout.ExtractRankedGroups(root, s.Scope)
		}
		if err != nil {
			return "", nil, err
		}
	}

	limit := len(ranking)
	if s.TopGroups > 0 && s.TopGroups < limit {
		limit = s.TopGroups
	}

	groups := make([]*tabscout.Group, 0, limit)
	for i, cand := range ranking[:limit] {
		content, err := s.renderGroup(cand)
		if err != nil {
			return "", nil, err
		}

		childCount := 0
		for _, n := range cand.Histogram {
			childCount += n
		}

		groups = append(groups, &tabscout.Group{
			Rank:          i + 1,
			NodeLabel:     cand.Node.Label,
			DominantLabel: cand.DominantLabel,
			DominantCount: cand.DominantCount,
			ChildCount:    childCount,
			Content:       content,
		})
	}

	return title, groups, nil
}

// extractSelected restricts extraction to the subtrees matching the
// configured selector and merges their rankings. Matches arrive in document
// order and each per-tree ranking is already position-stable, so a stable
// sort by dominant count restores the global order.
func (s *Scanner) extractSelected(ctx context.Context, markup string) (tabscout.Ranking, error) {
	trees, err := s.Selects.Select(markup, s.Selector)
	if err != nil {
		return nil, err
	}

	var merged tabscout.Ranking
	for _, root := range trees {
		var ranking tabscout.Ranking
		if s.ExtractWorkers > 1 {
			ranking, err = ExtractParallel(ctx, root, s.Scope, s.ExtractWorkers)
		} else {
			ranking, err = tabscout.ExtractRankedGroups(root, s.Scope)
		}
		if err != nil {
			return nil, err
		}
		merged = append(merged, ranking...)
	}

	slices.SortStableFunc(merged, func(a, b *tabscout.Candidate) int {
		return cmp.Compare(b.DominantCount, a.DominantCount)
	})
	return merged, nil
}

// renderGroup renders a candidate's subtree back to HTML and converts it to
// Markdown. Without a renderer or converter configured the stored content
// stays empty.
func (s *Scanner) renderGroup(cand *tabscout.Candidate) (string, error) {
	if s.Renderer == nil || s.Converter == nil {
		return "", nil
	}
	html, err := s.Renderer.Render(cand.Node)
	if err != nil {
		return "", err
	}
	return s.Converter.Convert(html)
}

// saveScanResult persists one page's scan and its groups, accumulating stats.
func (s *Scanner) saveScanResult(ctx context.Context, res *scanResult, result *Result) error {
	scan := &tabscout.Scan{
		SourceURL:   res.url,
		Title:       res.title,
		ContentHash: res.hash,
		GroupCount:  len(res.groups),
	}
	if err := s.Scans.CreateScan(ctx, scan); err != nil {
		return err
	}

	for _, group := range res.groups {
		group.ScanID = scan.ID
		if err := s.Groups.CreateGroup(ctx, group); err != nil {
			return err
		}
		result.Groups++
		result.Bytes += len(group.Content)
	}

	result.Scanned++
	return nil
}

// contentHash hashes the rendered group content of a page, used to detect
// content changes between scans of the same URL.
func contentHash(groups []*tabscout.Group) string {
	var sb strings.Builder
	for _, g := range groups {
		sb.WriteString(g.Content)
	}
	return ComputeHash(sb.String())
}

// pageTitle returns the text of the first title element, if any.
func pageTitle(n *tabscout.Node) string {
	if n == nil {
		return ""
	}
	if n.Label == "title" {
		return strings.TrimSpace(n.InnerText())
	}
	for _, c := range n.Children {
		if t := pageTitle(c); t != "" {
			return t
		}
	}
	return ""
}
