package mock

import "github.com/fwojciec/newsdesk"

var _ newsdesk.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of newsdesk.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*newsdesk.SourceDocument, error)
}

func (e *Extractor) Extract(html, pageURL string) (*newsdesk.SourceDocument, error) {
	return e.ExtractFn(html, pageURL)
}
