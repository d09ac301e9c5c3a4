package newsdesk

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the HTML served at url. Failures are reported with
	// EFORBIDDEN (the site refuses scraping), EUNRESOLVABLE (the host
	// does not resolve), EHTTP (any other non-200 status) or ENETWORK.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
