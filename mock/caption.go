package mock

import (
	"context"

	"github.com/fwojciec/newsdesk"
)

var _ newsdesk.CaptionSource = (*CaptionSource)(nil)

// CaptionSource is a mock implementation of newsdesk.CaptionSource.
type CaptionSource struct {
	TranscriptFn func(ctx context.Context, videoURL, language string) (string, error)
}

func (c *CaptionSource) Transcript(ctx context.Context, videoURL, language string) (string, error) {
	return c.TranscriptFn(ctx, videoURL, language)
}

var _ newsdesk.CaptionParser = (*CaptionParser)(nil)

// CaptionParser is a mock implementation of newsdesk.CaptionParser.
type CaptionParser struct {
	ParseCaptionsFn func(doc string) (string, error)
}

func (p *CaptionParser) ParseCaptions(doc string) (string, error) {
	return p.ParseCaptionsFn(doc)
}
