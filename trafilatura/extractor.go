// Package trafilatura implements newsdesk.Extractor with go-trafilatura's
// main-content detection.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/newsdesk"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements newsdesk.Extractor at compile time.
var _ newsdesk.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract article text from HTML.
type Extractor struct {
	converter newsdesk.Converter
}

// NewExtractor creates a new Extractor. The converter turns the detected
// content node into paragraph-preserving text; when nil, trafilatura's own
// plain-text rendering is used.
func NewExtractor(converter newsdesk.Converter) *Extractor {
	return &Extractor{converter: converter}
}

// Extract processes raw HTML and returns the article title and body.
func (e *Extractor) Extract(rawHTML, pageURL string) (*newsdesk.SourceDocument, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if u, err := url.Parse(pageURL); err == nil {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, newsdesk.Errorf(newsdesk.EINSUFFICIENT, "no readable article text at %s: %v", pageURL, err)
	}

	body := result.ContentText
	if e.converter != nil && result.ContentNode != nil {
		contentHTML, err := renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
		if md, err := e.converter.Convert(contentHTML); err == nil {
			body = md
		}
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, newsdesk.Errorf(newsdesk.EINSUFFICIENT, "no readable article text at %s", pageURL)
	}

	return &newsdesk.SourceDocument{
		Title:    strings.TrimSpace(result.Metadata.Title),
		Body:     body,
		SiteName: newsdesk.SiteName(pageURL),
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
