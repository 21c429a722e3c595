// Package rod provides a browser-based tabscout.Fetcher using Chrome
// automation. Pages are fully rendered before their HTML is captured, so
// groups assembled by client-side JavaScript are visible to extraction.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/tabscout"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the maximum time to render a single page.
const DefaultFetchTimeout = 30 * time.Second

// domStableWindow is how long the DOM must stop changing before a page
// is considered rendered. Client-side frameworks mutate the tree after
// the load event fires, so waiting for load alone returns placeholders.
const domStableWindow = 300 * time.Millisecond

// serializeScript renders the DOM to HTML, inlining any open shadow roots
// so content rendered by Web Components survives serialization. The
// built-in outerHTML serializer drops shadow DOM entirely, which hides
// navigation menus and listings on component-based sites.
const serializeScript = `() => {
	const serialize = (node) => {
		switch (node.nodeType) {
		case Node.TEXT_NODE:
			return node.textContent;
		case Node.ELEMENT_NODE: {
			const tag = node.tagName.toLowerCase();
			let out = '<' + tag;
			for (const attr of node.attributes) {
				out += ' ' + attr.name + '="' + attr.value.replace(/&/g, '&amp;').replace(/"/g, '&quot;') + '"';
			}
			out += '>';
			if (node.shadowRoot) {
				for (const child of node.shadowRoot.childNodes) {
					out += serialize(child);
				}
			}
			for (const child of node.childNodes) {
				out += serialize(child);
			}
			return out + '</' + tag + '>';
		}
		default:
			return '';
		}
	};
	return serialize(document.documentElement);
}`

// Ensure Fetcher implements tabscout.Fetcher at compile time.
var _ tabscout.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	fetchTimeout time.Duration
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the maximum time to render a single page.
// Defaults to DefaultFetchTimeout if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// NewFetcher creates a new Fetcher backed by a managed headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL, waits for the page to render, and returns
// the serialized HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", tabscout.Errorf(tabscout.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Scope all subsequent operations to the fetch context
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if err := page.WaitDOMStable(domStableWindow, 0); err != nil {
		return "", err
	}

	obj, err := page.Eval(serializeScript)
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return obj.Value.Str(), nil
}

// LauncherPID returns the process ID of the underlying browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}
