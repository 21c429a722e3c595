package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tabscout"
)

// Ensure LinkExtractor implements tabscout.LinkExtractor at compile time.
var _ tabscout.LinkExtractor = (*LinkExtractor)(nil)

// regionConfig pairs a CSS selector with the priority and source label
// of the page region it covers.
type regionConfig struct {
	selector string
	priority tabscout.LinkPriority
	source   string
}

// regions lists the page regions links are drawn from, most trusted
// first. Navigation links enumerate a site's sections; footer links are
// mostly legal and social noise.
var regions = []regionConfig{
	{"nav a[href]", tabscout.PriorityNavigation, "nav"},
	{"header a[href]", tabscout.PriorityNavigation, "nav"},
	{"main a[href]", tabscout.PriorityContent, "content"},
	{"article a[href]", tabscout.PriorityContent, "content"},
	{"footer a[href]", tabscout.PriorityFooter, "footer"},
}

// LinkExtractor discovers same-site links from a page, prioritized by
// the region they appear in.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses HTML and returns discovered links with priority.
// Links are deduplicated by URL, keeping the highest priority version.
// External links (different host than baseURL) are filtered out, and a
// final pass over all anchors catches links outside any recognized
// region at fallback priority. The returned links maintain document
// order based on first occurrence.
func (e *LinkExtractor) ExtractLinks(markup string, baseURL string) ([]tabscout.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, tabscout.Errorf(tabscout.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, tabscout.Errorf(tabscout.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs with their index in the result slice for O(1) updates
	seen := make(map[string]int)
	var links []tabscout.DiscoveredLink

	add := func(sel *goquery.Selection, priority tabscout.LinkPriority, source string) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		// Skip non-HTTP links (javascript:, mailto:, etc.)
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		// Filter external links (exact host match, subdomains are filtered)
		if !isSameHost(base, resolved) {
			return
		}

		link := tabscout.DiscoveredLink{
			URL:      resolved,
			Priority: priority,
			Text:     strings.TrimSpace(sel.Text()),
			Source:   source,
		}

		if idx, ok := seen[resolved]; ok {
			// Update if this has higher priority
			if priority > links[idx].Priority {
				links[idx] = link
			}
		} else {
			// First occurrence - add to slice and track index
			seen[resolved] = len(links)
			links = append(links, link)
		}
	}

	for _, region := range regions {
		doc.Find(region.selector).Each(func(_ int, sel *goquery.Selection) {
			add(sel, region.priority, region.source)
		})
	}

	// Catch-all for pages without semantic regions. Links already found
	// keep their higher priority due to the deduplication logic.
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		add(sel, tabscout.PriorityFallback, "page")
	})

	return links, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// is self-referential (same as base URL after stripping fragment).
// Fragments are stripped from the resolved URL for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// This uses exact host matching - subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
