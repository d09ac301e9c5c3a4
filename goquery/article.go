// Package goquery implements newsdesk.Extractor with a prioritised CSS
// selector cascade over the parsed document.
package goquery

import (
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsdesk"
	"golang.org/x/net/html"
)

// Thresholds of the extraction heuristics, in characters.
const (
	MinParagraphLength = 50
	EnoughTextLength   = 500
	MinArticleLength   = 300
	MinFallbackLine    = 30
	MaxFallbackLength  = 2000
)

// ArticleSelectors are tried in order; each selects paragraph-level blocks
// inside a common article container.
var ArticleSelectors = []string{
	`div.article-body p`,
	`div.entry-content p`,
	`div[itemprop="articleBody"] p`,
	`article p`,
	`.article-content p`,
	`.story-body p`,
	`.content p`,
	`.post-content p`,
	`main p`,
	`.post__text p`,
	`#contents p`,
	`.paragraph p`,
	`.article-text p`,
	`.News_Body p`,
}

// BoilerplateMarkers disqualify a paragraph found by ArticleSelectors.
var BoilerplateMarkers = []string{"版權所有", "未經授權", "廣告", "延伸閱讀"}

// FallbackMarkers disqualify a line of whole-page text. They extend
// BoilerplateMarkers with navigation, subscription and login chrome.
var FallbackMarkers = append(append([]string{}, BoilerplateMarkers...),
	"相關新聞", "熱門新聞", "推薦閱讀", "訂閱", "登入", "註冊", "搜尋", "首頁",
)

// Ensure Extractor implements newsdesk.Extractor at compile time.
var _ newsdesk.Extractor = (*Extractor)(nil)

// Extractor finds article text with ArticleSelectors and falls back to a
// line filter over the whole page when the cascade finds too little.
type Extractor struct {
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger that reports use of the whole-page fallback.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the article title and body.
func (e *Extractor) Extract(rawHTML, pageURL string) (*newsdesk.SourceDocument, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "failed to parse HTML: %v", err)
	}

	body := cascade(doc)
	if utf8.RuneCountInString(body) < MinArticleLength {
		e.logger.Warn("article selectors found too little text, using whole page",
			"url", pageURL,
			"length", utf8.RuneCountInString(body),
		)
		body = wholePage(doc)
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, newsdesk.Errorf(newsdesk.EINSUFFICIENT, "no readable article text at %s", pageURL).
			WithHint("Check that the URL points to an article, or paste the text and use the draft rewrite instead.")
	}

	return &newsdesk.SourceDocument{
		Title:    title(doc),
		Body:     body,
		SiteName: newsdesk.SiteName(pageURL),
	}, nil
}

// title prefers <title> and falls back to the first <h1>.
func title(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// cascade collects qualifying paragraphs selector by selector and stops
// once enough text has accumulated. A node matched by several selectors is
// collected once.
func cascade(doc *goquery.Document) string {
	var sb strings.Builder
	seen := make(map[*html.Node]bool)
	length := 0

	for _, selector := range ArticleSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			node := sel.Get(0)
			if seen[node] {
				return
			}
			text := strings.TrimSpace(sel.Text())
			if utf8.RuneCountInString(text) <= MinParagraphLength || containsAny(text, BoilerplateMarkers) {
				return
			}
			seen[node] = true
			sb.WriteString(text)
			sb.WriteString("\n\n")
			length += utf8.RuneCountInString(text) + 2
		})
		if length > EnoughTextLength {
			break
		}
	}
	return sb.String()
}

var (
	whitespaceRun = regexp.MustCompile(`[\s\p{Zs}]{2,}`)
	tabs          = strings.NewReplacer("\t", "")
)

// wholePage keeps sufficiently long lines of the page text that carry no
// boilerplate marker, capped at MaxFallbackLength characters.
func wholePage(doc *goquery.Document) string {
	body := doc.Find("body")
	body.Find("script, style, noscript").Remove()

	text := whitespaceRun.ReplaceAllLiteralString(body.Text(), "\n")
	text = strings.TrimSpace(tabs.Replace(text))

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if utf8.RuneCountInString(line) > MinFallbackLine && !containsAny(line, FallbackMarkers) {
			lines = append(lines, line)
		}
	}

	joined := strings.Join(lines, "\n\n")
	if runes := []rune(joined); len(runes) > MaxFallbackLength {
		joined = string(runes[:MaxFallbackLength])
	}
	return joined
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
