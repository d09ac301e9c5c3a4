// Package http provides the HTTP side of newsdesk: a static-page
// implementation of newsdesk.Fetcher and a JSON API server exposing the
// pipeline.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/newsdesk"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// DefaultUserAgent is sent with every request; many news sites reject
// requests without a browser-like agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// maxBodySize caps how much of a page is read.
const maxBodySize = 10 << 20

// Ensure Fetcher implements newsdesk.Fetcher at compile time.
var _ newsdesk.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests. It
// does not execute JavaScript; see rod.Fetcher for script-rendered sites.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", newsdesk.Errorf(newsdesk.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classify(url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return "", newsdesk.Errorf(newsdesk.EFORBIDDEN, "%s refused access (HTTP 403)", url).
			WithHint("The site blocks automated access. Copy the article text manually and use the draft rewrite instead.")
	case resp.StatusCode != http.StatusOK:
		return "", newsdesk.Errorf(newsdesk.EHTTP, "HTTP %d for %s", resp.StatusCode, url).
			WithHint("Check that the URL is valid and publicly reachable.")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", classify(url, err)
	}

	return string(body), nil
}

// classify maps a transport failure to an application error.
func classify(url string, err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return newsdesk.Errorf(newsdesk.EUNRESOLVABLE, "cannot resolve host %q for %s", dnsErr.Name, url).
			WithHint("Check the URL spelling and your network connection.")
	}
	return newsdesk.Errorf(newsdesk.ENETWORK, "fetching %s: %v", url, err).
		WithHint("The page may have changed layout, block scrapers, or the network may be down.")
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
