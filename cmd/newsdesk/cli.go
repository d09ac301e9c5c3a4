package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/newsdesk/pipeline"
	"github.com/fwojciec/newsdesk/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   yaml.Config
	Pipeline *pipeline.Pipeline

	// JSON prints results as API envelopes.
	JSON bool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" type:"path" help:"Path to YAML config (default $NEWSDESK_CONFIG)"`
	JSON    bool   `help:"Print results as JSON"`
	Verbose bool   `short:"v" help:"Log debug output to stderr"`

	RewriteURL RewriteURLCmd `cmd:"" name:"rewrite-url" help:"Rewrite news articles from their URLs"`
	Draft      DraftCmd      `cmd:"" help:"Rewrite a press release"`
	Translate  TranslateCmd  `cmd:"" help:"Translate and rewrite a foreign article"`
	Interview  InterviewCmd  `cmd:"" help:"Write an article from interview notes"`
	Social     SocialCmd     `cmd:"" help:"Turn a celebrity social media post into an article"`
	YouTube    YouTubeCmd    `cmd:"" name:"youtube" help:"Write an article from a YouTube video's captions"`
	Proofread  ProofreadCmd  `cmd:"" help:"Mark typos and grammar errors"`
	Extract    ExtractCmd    `cmd:"" help:"Print the article extracted from a URL"`
	Serve      ServeCmd      `cmd:"" help:"Serve the JSON API"`
}

// LengthFlags are the article shape flags shared by generating commands.
type LengthFlags struct {
	MinLength  int `name:"min-length" help:"Minimum article length in characters"`
	MaxLength  int `name:"max-length" help:"Maximum article length in characters"`
	Paragraphs int `short:"n" help:"Approximate number of paragraphs"`
}

func (f LengthFlags) options() pipeline.Options {
	return pipeline.Options{
		MinLength:     f.MinLength,
		MaxLength:     f.MaxLength,
		NumParagraphs: f.Paragraphs,
	}
}

// RewriteURLCmd is the "rewrite-url" subcommand.
type RewriteURLCmd struct {
	URLs        []string `arg:"" name:"url" help:"Article URLs"`
	Concurrency int      `short:"p" default:"3" help:"Articles processed at once"`
}

// DraftCmd is the "draft" subcommand.
type DraftCmd struct {
	File         string `arg:"" optional:"" help:"Press release file (default stdin)"`
	FilterBrands bool   `short:"b" help:"Replace brand names with a placeholder"`
	LengthFlags `embed:""`
}

// TranslateCmd is the "translate" subcommand.
type TranslateCmd struct {
	URL  string `arg:"" help:"Foreign article URL"`
	Lang string `short:"l" default:"auto" help:"Source language, or auto"`
}

// InterviewCmd is the "interview" subcommand.
type InterviewCmd struct {
	File  string `arg:"" optional:"" help:"Interview notes file (default stdin)"`
	Title string `short:"t" help:"Suggested headline"`
	Tone  string `default:"neutral" enum:"formal,engaging,announcement,neutral" help:"Article tone (${enum})"`
	LengthFlags `embed:""`
}

// SocialCmd is the "social" subcommand.
type SocialCmd struct {
	File     string `arg:"" optional:"" help:"Post text file (default stdin)"`
	Artist   string `short:"a" required:"" help:"Artist name"`
	Platform string `default:"Instagram" help:"Platform the post was published on"`
	Media    string `help:"Description of attached photos or video"`
	Link     string `help:"Link to the original post"`
	Remark   string `help:"Extra instructions for the writer"`
}

// YouTubeCmd is the "youtube" subcommand.
type YouTubeCmd struct {
	URL    string `arg:"" help:"YouTube video URL"`
	Lang   string `short:"l" default:"zh-TW" help:"Caption track language code"`
	Media  string `help:"Description of what the video shows"`
	Remark string `help:"Extra instructions for the writer"`
}

// ProofreadCmd is the "proofread" subcommand.
type ProofreadCmd struct {
	File   string `arg:"" optional:"" help:"Text file (default stdin)"`
	Markup bool   `short:"m" help:"Print HTML markup instead of annotated text"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL string `arg:"" help:"Article URL"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Listen address (default from config)"`
}
