package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsdesk"
	"github.com/fwojciec/newsdesk/crawl"
	"github.com/fwojciec/newsdesk/etree"
	"github.com/fwojciec/newsdesk/gemini"
	"github.com/fwojciec/newsdesk/goquery"
	"github.com/fwojciec/newsdesk/htmltomarkdown"
	ndhttp "github.com/fwojciec/newsdesk/http"
	"github.com/fwojciec/newsdesk/pipeline"
	"github.com/fwojciec/newsdesk/readability"
	"github.com/fwojciec/newsdesk/rod"
	ndslog "github.com/fwojciec/newsdesk/slog"
	"github.com/fwojciec/newsdesk/trafilatura"
	"github.com/fwojciec/newsdesk/whatlanggo"
	"github.com/fwojciec/newsdesk/yaml"
	"github.com/fwojciec/newsdesk/youtube"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read by commands taking text input. Set before calling Run().
	Stdin io.Reader

	// Pipeline replaces the wired pipeline when set, for end-to-end tests.
	Pipeline *pipeline.Pipeline

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Close releases fetchers opened by Run.
func (m *Main) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newsdesk"),
		kong.Description("Rewrite, translate and proofread news copy with Gemini."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newsdesk --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := yaml.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", newsdesk.ErrorMessage(err))
		return err
	}
	deps.Config = cfg
	deps.JSON = cli.JSON

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if m.Pipeline != nil {
		deps.Pipeline = m.Pipeline
		return kongCtx.Run(deps)
	}

	defer m.Close()
	p, err := m.wire(ctx, cfg, deps.Logger, cmd != "extract")
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", newsdesk.ErrorMessage(err))
		if hint := newsdesk.ErrorHint(err); hint != "" {
			fmt.Fprintf(stderr, "Hint: %s\n", hint)
		}
		return err
	}
	deps.Pipeline = p

	return kongCtx.Run(deps)
}

// wire builds the pipeline from cfg. The generator is only created when
// needGenerator is set, so extraction works without an API key.
func (m *Main) wire(ctx context.Context, cfg yaml.Config, logger *slog.Logger, needGenerator bool) (*pipeline.Pipeline, error) {
	plain := ndhttp.NewFetcher(ndhttp.WithTimeout(cfg.FetchTimeout))
	m.closers = append(m.closers, plain)

	var pages newsdesk.Fetcher = plain
	if cfg.Browser {
		browser, err := rod.NewFetcher(rod.WithFetchTimeout(cfg.FetchTimeout))
		if err != nil {
			return nil, err
		}
		m.closers = append(m.closers, browser)
		pages = browser
	}

	var extractor newsdesk.Extractor
	switch cfg.Extractor {
	case yaml.ExtractorTrafilatura:
		extractor = trafilatura.NewExtractor(htmltomarkdown.NewConverter())
	case yaml.ExtractorReadability:
		extractor = readability.NewExtractor(htmltomarkdown.NewConverter())
	default:
		extractor = goquery.NewExtractor(goquery.WithLogger(logger))
	}

	pages = crawl.NewFetcher(pages,
		crawl.WithHostRate(cfg.HostRate),
		crawl.WithLogger(logger))

	p := &pipeline.Pipeline{
		Fetcher:   ndslog.NewLoggingFetcher(pages, logger),
		Extractor: ndslog.NewLoggingExtractor(extractor, logger),
		Captions: ndslog.NewLoggingCaptionSource(
			youtube.NewCaptionSource(plain, etree.NewCaptionParser()), logger),
		Scrubber:  newsdesk.NewScrubber(cfg.Scrub),
		Languages: whatlanggo.NewDetector(),
	}

	if !needGenerator {
		return p, nil
	}

	if cfg.APIKey == "" {
		return nil, newsdesk.Errorf(newsdesk.EINVALID, "%s not set", yaml.APIKeyEnv).
			WithHint("Get an API key at https://aistudio.google.com/apikey")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, newsdesk.Errorf(newsdesk.EGENERATE, "failed to connect to Gemini API: %v", err).
			WithHint("Check your GEMINI_API_KEY is valid")
	}

	opts := []gemini.Option{gemini.WithRateLimit(cfg.RequestsPerSecond)}
	if cfg.MaxPromptTokens > 0 {
		counter, err := gemini.NewTokenCounter(cfg.Model)
		if err != nil {
			logger.Warn("token budget disabled", "model", cfg.Model, "err", err)
		} else {
			opts = append(opts, gemini.WithTokenBudget(counter, cfg.MaxPromptTokens))
		}
	}
	p.Generator = ndslog.NewLoggingGenerator(gemini.NewGenerator(client, cfg.Model, opts...), logger)

	return p, nil
}
