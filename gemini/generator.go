// Package gemini implements newsdesk.Generator and newsdesk.TokenCounter
// with Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/newsdesk"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// SystemInstruction is sent with every request.
const SystemInstruction = "你是一位資深的台灣新聞編輯。請一律以繁體中文撰寫，忠於原始資訊，不捏造事實。"

// Ensure Generator implements newsdesk.Generator at compile time.
var _ newsdesk.Generator = (*Generator)(nil)

// Generator implements newsdesk.Generator using Google Gemini.
// Generator is safe for concurrent use.
type Generator struct {
	client    *genai.Client
	model     string
	limiter   *rate.Limiter
	counter   newsdesk.TokenCounter
	maxTokens int
}

// Option configures a Generator.
type Option func(*Generator)

// WithRateLimit throttles calls to rps requests per second, with no
// bursting. Calls wait for a slot; they are never retried.
func WithRateLimit(rps float64) Option {
	return func(g *Generator) {
		if rps > 0 {
			g.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithTokenBudget rejects prompts longer than max tokens as counted by
// counter, before any request is made.
func WithTokenBudget(counter newsdesk.TokenCounter, max int) Option {
	return func(g *Generator) {
		g.counter = counter
		g.maxTokens = max
	}
}

// NewGenerator creates a new Generator. An empty model means DefaultModel.
func NewGenerator(client *genai.Client, model string, opts ...Option) *Generator {
	if model == "" {
		model = DefaultModel
	}
	g := &Generator{client: client, model: model}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Model returns the model name requests are sent to.
func (g *Generator) Model() string {
	return g.model
}

// Generate sends prompt to the model and returns the completion text.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", newsdesk.Errorf(newsdesk.EINVALID, "prompt required")
	}

	if g.counter != nil && g.maxTokens > 0 {
		n, err := g.counter.CountTokens(ctx, prompt)
		if err != nil {
			return "", newsdesk.Errorf(newsdesk.EGENERATE, "counting prompt tokens: %v", err)
		}
		if n > g.maxTokens {
			return "", newsdesk.Errorf(newsdesk.EINVALID, "prompt has %d tokens, limit is %d", n, g.maxTokens).
				WithHint("Shorten the source text and try again.")
		}
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			// The next slot lies beyond the context deadline.
			if _, ok := ctx.Deadline(); ok {
				return "", context.DeadlineExceeded
			}
			return "", newsdesk.Errorf(newsdesk.EGENERATE, "waiting for rate limiter: %v", err)
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), BuildConfig())
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", newsdesk.Errorf(newsdesk.EGENERATE, "gemini: %v", err)
	}
	if result == nil {
		return "", newsdesk.Errorf(newsdesk.EGENERATE, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// Safety blocking is disabled for all four harm categories.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.7)
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	safety := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		safety = append(safety, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}
	return &genai.GenerateContentConfig{
		SystemInstruction: instructionContent(SystemInstruction),
		Temperature:    &temp,
		SafetySettings: safety,
	}
}

func instructionContent(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}
