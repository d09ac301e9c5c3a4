package slog

import (
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/newsdesk"
)

// Ensure LoggingExtractor implements newsdesk.Extractor.
var _ newsdesk.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   newsdesk.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next newsdesk.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the body size in
// characters.
func (e *LoggingExtractor) Extract(html, pageURL string) (doc *newsdesk.SourceDocument, err error) {
	defer func(begin time.Time) {
		var chars int
		var title, site string
		if doc != nil {
			chars = utf8.RuneCountInString(doc.Body)
			title = doc.Title
			site = doc.SiteName
		}
		e.logger.Debug("extract",
			"url", pageURL,
			"site", site,
			"title", title,
			"chars", chars,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, pageURL)
}
