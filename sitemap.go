package tabscout

import (
	"context"
	"regexp"
)

// SitemapService enumerates the pages of a site for whole-site scans.
type SitemapService interface {
	// DiscoverURLs finds the URLs a site advertises. It checks
	// robots.txt for sitemap directives, then falls back to
	// /sitemap.xml. Sitemap indexes are resolved recursively.
	//
	// A nil filter returns every URL found.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter narrows a URL set by regular expression patterns.
// Include is applied first; a URL must then clear every Exclude pattern.
type URLFilter struct {
	// Include patterns. When set, only URLs matching at least one
	// pattern pass.
	Include []*regexp.Regexp

	// Exclude patterns. URLs matching any pattern are dropped.
	Exclude []*regexp.Regexp
}

// Match reports whether the URL passes the filter.
// A nil filter passes everything.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}
