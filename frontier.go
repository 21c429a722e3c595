package tabscout

import "context"

// URLFrontier queues the URLs of a recursive site scan, highest
// priority first, deduplicating as links are pushed.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the URL has already been seen.
	Push(link DiscoveredLink) bool

	// Pop returns the next link by priority.
	// Returns false if the frontier is empty.
	Pop() (DiscoveredLink, bool)

	// Len returns the number of queued links.
	Len() int

	// Seen reports whether the URL has been queued or processed.
	Seen(url string) bool
}

// DomainLimiter throttles scan requests per domain so site scans stay
// polite to their targets.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
