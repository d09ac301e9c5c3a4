// Package youtube implements newsdesk.CaptionSource for YouTube videos.
//
// Captions are located through the "captionTracks" list embedded in the
// watch page and downloaded from the selected track's timedtext URL.
package youtube

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/fwojciec/newsdesk"
)

// DefaultWatchURL is the prefix a video ID is appended to.
const DefaultWatchURL = "https://www.youtube.com/watch?v="

// Ensure CaptionSource implements newsdesk.CaptionSource at compile time.
var _ newsdesk.CaptionSource = (*CaptionSource)(nil)

// CaptionSource fetches and flattens YouTube captions.
type CaptionSource struct {
	fetcher  newsdesk.Fetcher
	parser   newsdesk.CaptionParser
	watchURL string
}

// Option configures a CaptionSource.
type Option func(*CaptionSource)

// WithWatchURL overrides DefaultWatchURL.
func WithWatchURL(prefix string) Option {
	return func(s *CaptionSource) {
		s.watchURL = prefix
	}
}

// NewCaptionSource creates a CaptionSource that downloads pages with
// fetcher and decodes caption documents with parser.
func NewCaptionSource(fetcher newsdesk.Fetcher, parser newsdesk.CaptionParser, opts ...Option) *CaptionSource {
	s := &CaptionSource{
		fetcher:  fetcher,
		parser:   parser,
		watchURL: DefaultWatchURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
}

// Transcript returns the captions of videoURL in language as plain text.
func (s *CaptionSource) Transcript(ctx context.Context, videoURL, language string) (string, error) {
	if language == "" {
		return "", newsdesk.Errorf(newsdesk.EINVALID, "caption language required")
	}
	id, err := VideoID(videoURL)
	if err != nil {
		return "", err
	}

	page, err := s.fetcher.Fetch(ctx, s.watchURL+id)
	if err != nil {
		return "", err
	}

	tracks := captionTracks(page)
	if len(tracks) == 0 {
		return "", newsdesk.Errorf(newsdesk.ENOTFOUND, "此影片沒有字幕。")
	}

	var track *captionTrack
	available := make([]string, 0, len(tracks))
	for i := range tracks {
		available = append(available, tracks[i].LanguageCode)
		if track == nil && tracks[i].LanguageCode == language {
			track = &tracks[i]
		}
	}
	if track == nil {
		return "", newsdesk.Errorf(newsdesk.ENOTFOUND, "no %q captions for video %s", language, id).
			WithHint("Available languages: " + strings.Join(available, ", "))
	}

	doc, err := s.fetcher.Fetch(ctx, track.BaseURL)
	if err != nil {
		return "", err
	}
	text, err := s.parser.ParseCaptions(doc)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", newsdesk.Errorf(newsdesk.EINSUFFICIENT, "captions for video %s are empty", id)
	}
	return text, nil
}

// captionTracks decodes the JSON array following the first
// "captionTracks" key in page. It returns nil when there is none.
func captionTracks(page string) []captionTrack {
	const key = `"captionTracks":`
	i := strings.Index(page, key)
	if i < 0 {
		return nil
	}
	var tracks []captionTrack
	if err := json.NewDecoder(strings.NewReader(page[i+len(key):])).Decode(&tracks); err != nil {
		return nil
	}
	return tracks
}

// VideoID extracts the video ID from watch, short-link, shorts and embed
// URLs.
func VideoID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", newsdesk.Errorf(newsdesk.EINVALID, "invalid YouTube URL %q", rawURL)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	path := strings.Trim(u.Path, "/")

	var id string
	switch host {
	case "youtu.be":
		id = path
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		switch {
		case path == "watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(path, "shorts/"):
			id = strings.TrimPrefix(path, "shorts/")
		case strings.HasPrefix(path, "embed/"):
			id = strings.TrimPrefix(path, "embed/")
		case strings.HasPrefix(path, "live/"):
			id = strings.TrimPrefix(path, "live/")
		}
	default:
		return "", newsdesk.Errorf(newsdesk.EINVALID, "%q is not a YouTube URL", rawURL)
	}

	if i := strings.IndexByte(id, '/'); i >= 0 {
		id = id[:i]
	}
	if id == "" {
		return "", newsdesk.Errorf(newsdesk.EINVALID, "no video ID in %q", rawURL)
	}
	return id, nil
}
