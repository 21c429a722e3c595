package main

import (
	"fmt"
	"regexp"

	"github.com/fwojciec/tabscout"
	"github.com/fwojciec/tabscout/scan"
)

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	// Compile filters to URLFilter (validates regex patterns early)
	var urlFilter *tabscout.URLFilter
	if len(c.Filter) > 0 {
		urlFilter = &tabscout.URLFilter{}
		for _, pattern := range c.Filter {
			re, err := regexp.Compile(pattern)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: invalid filter pattern %q: %v\n", pattern, err)
				fmt.Fprintf(deps.Stderr, "  Filters are Go regex patterns matched against URLs. Example: --filter '/catalog/' --filter 'items'\n")
				return err
			}
			urlFilter.Include = append(urlFilter.Include, re)
		}
	}

	// Preview mode: show URLs a site scan would visit, without scanning
	if c.Preview {
		if deps.Sitemaps == nil {
			fmt.Fprintf(deps.Stderr, "error: sitemap discovery is not configured\n")
			return tabscout.Errorf(tabscout.EINTERNAL, "sitemap discovery is not configured")
		}

		urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, urlFilter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tabscout.ErrorMessage(err))
			return err
		}

		if len(urls) == 0 && deps.Fetcher != nil && deps.Links != nil && deps.RateLimiter != nil {
			// No sitemap: discover recursively, streaming URLs as found.
			_, err := scan.DiscoverURLs(deps.Ctx, c.URL, urlFilter,
				deps.Fetcher, deps.Links, deps.RateLimiter,
				scan.WithConcurrency(c.Concurrency),
				scan.WithOnURL(func(u string) { fmt.Fprintln(deps.Stdout, u) }))
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", tabscout.ErrorMessage(err))
				return err
			}
			return nil
		}

		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	if deps.Scanner == nil {
		fmt.Fprintf(deps.Stderr, "error: scanner is not configured\n")
		return tabscout.Errorf(tabscout.EINTERNAL, "scanner is not configured")
	}

	// Apply the scan knobs to the wired scanner
	s := deps.Scanner
	if c.Concurrency > 0 {
		s.Concurrency = c.Concurrency
	}
	s.Scope = c.scope()
	s.Selector = c.Selector
	if c.Top > 0 {
		s.TopGroups = c.Top
	}
	if c.Workers > 1 {
		s.ExtractWorkers = c.Workers
	}

	// Single page scan
	if !c.Site {
		scanRec, groups, err := s.ScanPage(deps.Ctx, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tabscout.ErrorMessage(err))
			return err
		}

		fmt.Fprintf(deps.Stdout, "Scanned %s (scan %s)\n", c.URL, scanRec.ID)
		if len(groups) == 0 {
			fmt.Fprintln(deps.Stdout, "No groups found.")
			return nil
		}
		for _, g := range groups {
			fmt.Fprintf(deps.Stdout, "  %d. <%s> with %d <%s> children\n",
				g.Rank, g.NodeLabel, g.DominantCount, g.DominantLabel)
		}
		return nil
	}

	// Site scan with live progress
	progress := func(event scan.ProgressEvent) {
		switch event.Type {
		case scan.ProgressStarted:
			if event.Total > 0 {
				fmt.Fprintf(deps.Stdout, "  Found %d URLs\n", event.Total)
			}
		case scan.ProgressCompleted:
			if event.Total > 0 {
				fmt.Fprintf(deps.Stdout, "\r  [%d/%d] %s", event.Completed, event.Total, scan.TruncateURL(event.URL, 60))
			} else {
				fmt.Fprintf(deps.Stdout, "\r  [%d] %s", event.Completed, scan.TruncateURL(event.URL, 60))
			}
		case scan.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case scan.ProgressFinished:
			fmt.Fprintln(deps.Stdout)
		}
	}

	result, err := s.ScanSite(deps.Ctx, c.URL, urlFilter, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error scanning: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d scans with %d groups (%s)\n",
		result.Scanned, result.Groups, scan.FormatBytes(result.Bytes))
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  Failed %d pages\n", result.Failed)
	}
	return nil
}

// scope assembles the candidacy scope from the scoping flags.
func (c *ScanCmd) scope() tabscout.Scope {
	var scopes []tabscout.Scope
	if len(c.Label) > 0 {
		scopes = append(scopes, tabscout.ScopeLabels(c.Label...))
	}
	if c.Within != "" {
		scopes = append(scopes, tabscout.ScopeWithin(c.Within))
	}
	if c.MinChildren > 0 {
		scopes = append(scopes, tabscout.ScopeMinChildren(c.MinChildren))
	}
	if len(scopes) == 0 {
		return nil
	}
	return tabscout.ScopeAll(scopes...)
}
