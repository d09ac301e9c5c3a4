package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/newsdesk"
)

// Ensure LoggingCaptionSource implements newsdesk.CaptionSource.
var _ newsdesk.CaptionSource = (*LoggingCaptionSource)(nil)

// LoggingCaptionSource wraps a CaptionSource with logging.
type LoggingCaptionSource struct {
	next   newsdesk.CaptionSource
	logger *slog.Logger
}

// NewLoggingCaptionSource creates a new LoggingCaptionSource.
func NewLoggingCaptionSource(next newsdesk.CaptionSource, logger *slog.Logger) *LoggingCaptionSource {
	return &LoggingCaptionSource{next: next, logger: logger}
}

// Transcript delegates to the wrapped source and logs the result size.
func (s *LoggingCaptionSource) Transcript(ctx context.Context, videoURL, language string) (text string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("captions",
			"url", videoURL,
			"language", language,
			"chars", utf8.RuneCountInString(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Transcript(ctx, videoURL, language)
}
