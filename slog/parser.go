package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/tabscout"
)

// Ensure LoggingParser implements tabscout.Parser.
var _ tabscout.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with debug logging.
type LoggingParser struct {
	next   tabscout.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next tabscout.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the operation.
func (p *LoggingParser) Parse(markup string) (root *tabscout.Node, err error) {
	defer func(begin time.Time) {
		p.logger.Info("parse",
			"bytes", len(markup),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(markup)
}
