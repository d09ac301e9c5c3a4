// Package etree implements newsdesk.CaptionParser for XML caption formats
// using beevik/etree.
package etree

import (
	"html"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/newsdesk"
)

// Ensure CaptionParser implements newsdesk.CaptionParser at compile time.
var _ newsdesk.CaptionParser = (*CaptionParser)(nil)

// CaptionParser flattens TTML (<tt>) and YouTube timedtext (<transcript>
// and <timedtext>) caption documents into a single line of text, cues
// joined by spaces.
type CaptionParser struct{}

// NewCaptionParser creates a new CaptionParser.
func NewCaptionParser() *CaptionParser {
	return &CaptionParser{}
}

// ParseCaptions returns the text of every cue in document order.
func (p *CaptionParser) ParseCaptions(doc string) (string, error) {
	if strings.TrimSpace(doc) == "" {
		return "", newsdesk.Errorf(newsdesk.EINVALID, "empty caption document")
	}

	d := etree.NewDocument()
	if err := d.ReadFromString(doc); err != nil {
		return "", newsdesk.Errorf(newsdesk.EINVALID, "failed to parse captions: %v", err)
	}
	root := d.Root()
	if root == nil {
		return "", newsdesk.Errorf(newsdesk.EINVALID, "caption document has no root element")
	}

	var path string
	switch root.Tag {
	case "tt", "timedtext":
		path = "//p"
	case "transcript":
		path = "//text"
	default:
		return "", newsdesk.Errorf(newsdesk.EINVALID, "unsupported caption format <%s>", root.Tag)
	}

	var cues []string
	for _, el := range root.FindElements(path) {
		if cue := cueText(el); cue != "" {
			cues = append(cues, cue)
		}
	}
	return strings.Join(cues, " "), nil
}

// cueText gathers the character data of el and its descendants. Line
// breaks become spaces. YouTube double-escapes entities, so the text is
// unescaped once more after XML decoding.
func cueText(el *etree.Element) string {
	var sb strings.Builder
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				sb.WriteString(t.Data)
			case *etree.Element:
				if t.Tag == "br" {
					sb.WriteString(" ")
					continue
				}
				walk(t)
			}
		}
	}
	walk(el)
	return strings.Join(strings.Fields(html.UnescapeString(sb.String())), " ")
}
