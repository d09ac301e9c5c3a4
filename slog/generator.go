package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/newsdesk"
)

// Ensure LoggingGenerator implements newsdesk.Generator.
var _ newsdesk.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging. Prompt and completion
// text are never logged, only their sizes.
type LoggingGenerator struct {
	next   newsdesk.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next newsdesk.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the exchange.
func (g *LoggingGenerator) Generate(ctx context.Context, prompt string) (text string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"prompt_chars", utf8.RuneCountInString(prompt),
			"response_chars", utf8.RuneCountInString(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, prompt)
}
