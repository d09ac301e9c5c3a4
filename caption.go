package newsdesk

import "context"

// CaptionSource produces a plain transcript from a video's caption track.
type CaptionSource interface {
	// Transcript returns the caption text of the track in the given
	// language. Returns ENOTFOUND if the video has no such track.
	Transcript(ctx context.Context, videoURL, language string) (string, error)
}

// CaptionParser flattens a caption document (TTML or YouTube timedtext)
// into plain text.
type CaptionParser interface {
	ParseCaptions(doc string) (string, error)
}
