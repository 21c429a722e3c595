package tabscout

import "context"

// Fetcher retrieves page markup for scanning.
// Implementations range from a plain HTTP client to a headless browser
// for pages that assemble their content client-side.
type Fetcher interface {
	// Fetch retrieves the markup at url, rendered first if the
	// implementation renders. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher, such as a
	// browser process. Must be called when the Fetcher is no longer
	// needed.
	Close() error
}
