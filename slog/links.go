package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/tabscout"
)

// Ensure LoggingLinkExtractor implements tabscout.LinkExtractor.
var _ tabscout.LinkExtractor = (*LoggingLinkExtractor)(nil)

// LoggingLinkExtractor wraps a LinkExtractor with debug logging.
type LoggingLinkExtractor struct {
	next   tabscout.LinkExtractor
	logger *slog.Logger
}

// NewLoggingLinkExtractor creates a new LoggingLinkExtractor.
func NewLoggingLinkExtractor(next tabscout.LinkExtractor, logger *slog.Logger) *LoggingLinkExtractor {
	return &LoggingLinkExtractor{next: next, logger: logger}
}

// ExtractLinks delegates to the wrapped extractor and logs the link count.
func (e *LoggingLinkExtractor) ExtractLinks(html string, baseURL string) (links []tabscout.DiscoveredLink, err error) {
	defer func(begin time.Time) {
		e.logger.Info("link extraction",
			"url", baseURL,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractLinks(html, baseURL)
}
