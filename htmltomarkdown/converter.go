// Package htmltomarkdown implements newsdesk.Converter with html-to-markdown,
// tuned for article bodies: links are flattened to their text and media is
// dropped so the result reads as plain paragraphs.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsdesk"
)

// Ensure Converter implements newsdesk.Converter at compile time.
var _ newsdesk.Converter = (*Converter)(nil)

// mediaSelector matches elements that carry no article text.
const mediaSelector = "img, picture, figure, video, audio, iframe, script, style, noscript, svg"

// Converter wraps html-to-markdown to convert article HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms article HTML into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", newsdesk.Errorf(newsdesk.EINVALID, "empty HTML input")
	}

	cleaned, err := flatten(html)
	if err != nil {
		return "", err
	}

	result, err := c.conv.ConvertString(cleaned)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}

// flatten removes media and replaces every link with its contents.
func flatten(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", newsdesk.Errorf(newsdesk.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(mediaSelector).Remove()
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		sel.ReplaceWithSelection(sel.Contents())
	})

	return doc.Find("body").Html()
}
