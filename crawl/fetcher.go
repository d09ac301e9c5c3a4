package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/newsdesk"
)

// Ensure Fetcher implements newsdesk.Fetcher at compile time.
var _ newsdesk.Fetcher = (*Fetcher)(nil)

// Fetcher wraps a newsdesk.Fetcher with per-host rate limiting, so that a
// batch of articles from one outlet is not fetched in a burst. Each call
// is a single attempt; failures are returned as is.
type Fetcher struct {
	next    newsdesk.Fetcher
	limiter *DomainLimiter
	logger  *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHostRate limits requests to rps per second per host. Zero or
// negative disables the limit.
func WithHostRate(rps float64) Option {
	return func(f *Fetcher) {
		if rps > 0 {
			f.limiter = NewDomainLimiter(rps)
		} else {
			f.limiter = nil
		}
	}
}

// WithLogger logs requests that had to wait for their host.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher wraps next. Without WithHostRate requests are not limited.
func NewFetcher(next newsdesk.Fetcher, opts ...Option) *Fetcher {
	f := &Fetcher{
		next:   next,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch waits for the host of rawURL, then fetches it.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.limiter != nil {
		host := hostOf(rawURL)
		start := time.Now()
		if err := f.limiter.Wait(ctx, host); err != nil {
			return "", err
		}
		if waited := time.Since(start); waited > 10*time.Millisecond {
			f.logger.Debug("throttled", "host", host, "waited", waited)
		}
	}
	return f.next.Fetch(ctx, rawURL)
}

// Close closes the wrapped fetcher.
func (f *Fetcher) Close() error {
	return f.next.Close()
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Hostname()
}
