// Package pipeline composes extraction, scrubbing, generation, output
// parsing and title synthesis into one operation per source kind.
//
// Every operation runs sequentially and shares nothing with concurrent
// calls. Failures of the fetch, generation and caption stages abort the
// run; unparseable generator output does not.
package pipeline

import (
	"context"
	"errors"
	"strings"

	"github.com/forPelevin/gomoji"
	"github.com/fwojciec/newsdesk"
)

// DefaultCaptionLanguage is used for videos when no language is given.
const DefaultCaptionLanguage = "zh-TW"

// draftTitleHint is how many leading characters of a draft or post stand
// in for a missing title.
const draftTitleHint = 30

// Source labels for results whose text did not come from an outlet.
const draftSource = "通稿"

// proofreadTitle is the title hint used for proofread text.
const proofreadTitle = "錯字校正"

// Pipeline runs the normalization and generation pipeline. Fetcher and
// Extractor serve URL operations, Captions serves video operations. A nil
// Scrubber means the default lists. Languages, when set, names the source
// language of translations requested with "auto".
type Pipeline struct {
	Fetcher   newsdesk.Fetcher
	Extractor newsdesk.Extractor
	Generator newsdesk.Generator
	Captions  newsdesk.CaptionSource
	Scrubber  *newsdesk.Scrubber
	Languages newsdesk.LanguageDetector
}

// Interview is the input of GenerateFromInterview.
type Interview struct {
	Content string
	Title   string
}

// SocialPost is the input of SocialPostToNews.
type SocialPost struct {
	ArtistName       string
	Platform         string
	Content          string
	MediaDescription string
	OriginalLink     string
	Remark           string
}

// Video is the input of VideoToNews.
type Video struct {
	URL              string
	Language         string
	MediaDescription string
	Remark           string
}

// Extract fetches url and extracts its article.
func (p *Pipeline) Extract(ctx context.Context, url string) (*newsdesk.SourceDocument, error) {
	if strings.TrimSpace(url) == "" {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "請提供新聞網址。")
	}
	return p.extract(ctx, url)
}

// RewriteURL rewrites the article at url.
func (p *Pipeline) RewriteURL(ctx context.Context, url string) (*Result, error) {
	if strings.TrimSpace(url) == "" {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "請提供新聞網址。")
	}
	doc, err := p.extract(ctx, url)
	if err != nil {
		return nil, err
	}

	body := p.scrubber().Scrub(doc.Body)
	titles := newsdesk.SynthesizeTitles(doc.Title, body)

	gen, err := p.generateParsed(ctx, rewriteURLPrompt(doc.SiteName, body))
	if err != nil {
		return nil, err
	}

	return &Result{
		Kind:           KindRewrite,
		Text:           orDefault(gen.Content, body),
		Titles:         titles,
		OriginalSource: doc.SiteName,
		Parsed:         gen.Parsed,
	}, nil
}

// RewriteDraft rewrites a press release. Brand names are only filtered
// when opts.FilterBrands is set.
func (p *Pipeline) RewriteDraft(ctx context.Context, content string, opts Options) (*Result, error) {
	if strings.TrimSpace(content) == "" {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "請提供通稿內容。")
	}

	s := p.scrubber()
	draft := content
	if opts.FilterBrands {
		draft = s.FilterBrands(draft)
	}
	draft = s.FixPunctuation(s.RemovePRSentences(draft))
	titles := newsdesk.SynthesizeTitles(head(draft, draftTitleHint), draft)

	gen, err := p.generateParsed(ctx, draftPrompt(draft, opts))
	if err != nil {
		return nil, err
	}

	return &Result{
		Kind:           KindDraft,
		Text:           orDefault(gen.Content, draft),
		Titles:         titles,
		OriginalSource: draftSource,
		Parsed:         gen.Parsed,
	}, nil
}

// TranslateRewrite translates the foreign article at url into Traditional
// Chinese, then rewrites the translation.
func (p *Pipeline) TranslateRewrite(ctx context.Context, url string, opts Options) (*Result, error) {
	if strings.TrimSpace(url) == "" {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "請提供外電新聞網址。")
	}
	doc, err := p.extract(ctx, url)
	if err != nil {
		return nil, err
	}

	lang := opts.SourceLanguage
	if (lang == "" || lang == "auto") && p.Languages != nil {
		lang = p.Languages.DetectLanguage(doc.Body)
	}

	translated, err := p.generate(ctx, translatePrompt(lang, doc.Body))
	if err != nil {
		return nil, err
	}
	body := p.scrubber().Scrub(strings.TrimSpace(translated))
	titles := newsdesk.SynthesizeTitles(doc.Title, body)

	gen, err := p.generateParsed(ctx, translatedRewritePrompt(doc.SiteName, body))
	if err != nil {
		return nil, err
	}

	return &Result{
		Kind:           KindTranslate,
		Text:           orDefault(gen.Content, body),
		Titles:         titles,
		OriginalSource: doc.SiteName,
		Parsed:         gen.Parsed,
	}, nil
}

// GenerateFromInterview writes an article from interview notes.
func (p *Pipeline) GenerateFromInterview(ctx context.Context, in Interview, opts Options) (*Result, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "請提供訪問內容。")
	}
	titles := newsdesk.SynthesizeTitles(in.Title, in.Content)

	gen, err := p.generateParsed(ctx, interviewPrompt(in, opts))
	if err != nil {
		return nil, err
	}
	text, err := p.generatedText(gen)
	if err != nil {
		return nil, err
	}

	return &Result{
		Kind:   KindInterview,
		Text:   text,
		Titles: titles,
		Parsed: gen.Parsed,
	}, nil
}

// SocialPostToNews turns a celebrity's social media post into an article.
func (p *Pipeline) SocialPostToNews(ctx context.Context, post SocialPost) (*Result, error) {
	if strings.TrimSpace(post.ArtistName) == "" || strings.TrimSpace(post.Content) == "" {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "藝人名稱和社群文章內容為必填項。")
	}

	gen, err := p.generateParsed(ctx, socialPrompt(post))
	if err != nil {
		return nil, err
	}
	text, err := p.generatedText(gen)
	if err != nil {
		return nil, err
	}

	return &Result{
		Kind:   KindSocial,
		Text:   text,
		Titles: newsdesk.SynthesizeTitles(generatedTitle(gen, gomoji.RemoveEmojis(post.Content)), text),
		Parsed: gen.Parsed,
	}, nil
}

// VideoToNews writes an article from a video's captions.
func (p *Pipeline) VideoToNews(ctx context.Context, v Video) (*Result, error) {
	if strings.TrimSpace(v.URL) == "" {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "請提供 YouTube 影片連結。")
	}
	if p.Captions == nil {
		return nil, newsdesk.Errorf(newsdesk.EINTERNAL, "no caption source configured")
	}
	lang := v.Language
	if lang == "" || lang == "auto" {
		lang = DefaultCaptionLanguage
	}

	transcript, err := p.Captions.Transcript(ctx, v.URL, lang)
	if err != nil {
		return nil, err
	}

	gen, err := p.generateParsed(ctx, videoPrompt(v, transcript))
	if err != nil {
		return nil, err
	}
	text, err := p.generatedText(gen)
	if err != nil {
		return nil, err
	}

	return &Result{
		Kind:   KindVideo,
		Text:   text,
		Titles: newsdesk.SynthesizeTitles(generatedTitle(gen, text), text),
		Parsed: gen.Parsed,
	}, nil
}

// Proofread asks the model to annotate errors in text as 原詞(訂正詞) and
// renders the annotations as display markup.
func (p *Pipeline) Proofread(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "請提供需要校對的內容。")
	}

	corrected, err := p.generate(ctx, proofreadPrompt(text))
	if err != nil {
		return nil, err
	}
	corrected = strings.TrimSpace(corrected)

	return &Result{
		Kind:   KindProofread,
		Text:   corrected,
		Titles: newsdesk.SynthesizeTitles(proofreadTitle, corrected),
		Markup: newsdesk.FormatProofread(corrected),
		Parsed: true,
	}, nil
}

func (p *Pipeline) extract(ctx context.Context, url string) (*newsdesk.SourceDocument, error) {
	if p.Fetcher == nil || p.Extractor == nil {
		return nil, newsdesk.Errorf(newsdesk.EINTERNAL, "no fetcher or extractor configured")
	}
	html, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := p.Extractor.Extract(html, url)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.Body) == "" {
		return nil, newsdesk.Errorf(newsdesk.EINSUFFICIENT, "無法獲取網址內容，請檢查網址是否有效或內容是否可讀。")
	}
	if doc.SiteName == "" {
		doc.SiteName = newsdesk.SiteName(url)
	}
	return doc, nil
}

// generate calls the generator. Uncoded failures become EGENERATE with
// the upstream message; cancellation passes through unchanged.
func (p *Pipeline) generate(ctx context.Context, prompt string) (string, error) {
	if p.Generator == nil {
		return "", newsdesk.Errorf(newsdesk.EINTERNAL, "no generator configured")
	}
	text, err := p.Generator.Generate(ctx, prompt)
	if err == nil {
		return text, nil
	}
	var e *newsdesk.Error
	if errors.As(err, &e) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "", err
	}
	return "", newsdesk.Errorf(newsdesk.EGENERATE, "generation failed: %v", err)
}

func (p *Pipeline) generateParsed(ctx context.Context, prompt string) (newsdesk.GenerationResult, error) {
	raw, err := p.generate(ctx, prompt)
	if err != nil {
		return newsdesk.GenerationResult{}, err
	}
	return newsdesk.ParseGeneration(raw), nil
}

// generatedText scrubs generated content. Operations without source text
// to fall back on fail when the model returned nothing.
func (p *Pipeline) generatedText(gen newsdesk.GenerationResult) (string, error) {
	text := p.scrubber().Scrub(gen.Content)
	if strings.TrimSpace(text) == "" {
		return "", newsdesk.Errorf(newsdesk.EGENERATE, "generator returned no content")
	}
	return text, nil
}

func (p *Pipeline) scrubber() *newsdesk.Scrubber {
	if p.Scrubber == nil {
		return newsdesk.NewScrubber(newsdesk.DefaultScrubConfig())
	}
	return p.Scrubber
}

// generatedTitle prefers the model's first long title. Sentinel titles of
// an unparsed reply are ignored in favor of the leading text of fallback.
func generatedTitle(gen newsdesk.GenerationResult, fallback string) string {
	if gen.Parsed && len(gen.LongTitles) > 0 && gen.LongTitles[0] != "" {
		return gen.LongTitles[0]
	}
	return head(fallback, draftTitleHint)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// head returns the first n runes of s.
func head(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
