// Package readability implements newsdesk.Extractor with go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/newsdesk"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements newsdesk.Extractor at compile time.
var _ newsdesk.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract article text from HTML.
type Extractor struct {
	converter newsdesk.Converter
}

// NewExtractor creates a new Extractor. The converter turns the article
// HTML into paragraph-preserving text; when nil, readability's flattened
// text content is used.
func NewExtractor(converter newsdesk.Converter) *Extractor {
	return &Extractor{converter: converter}
}

// Extract processes raw HTML and returns the article title and body.
func (e *Extractor) Extract(rawHTML, pageURL string) (*newsdesk.SourceDocument, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "empty HTML input")
	}

	u, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, newsdesk.Errorf(newsdesk.EINSUFFICIENT, "no readable article text at %s: %v", pageURL, err)
	}

	body := article.TextContent
	if e.converter != nil && strings.TrimSpace(article.Content) != "" {
		if md, err := e.converter.Convert(article.Content); err == nil {
			body = md
		}
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, newsdesk.Errorf(newsdesk.EINSUFFICIENT, "no readable article text at %s", pageURL)
	}

	return &newsdesk.SourceDocument{
		Title:    strings.TrimSpace(article.Title),
		Body:     body,
		SiteName: newsdesk.SiteName(pageURL),
	}, nil
}
