package gemini

import (
	"context"

	"github.com/fwojciec/newsdesk"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ newsdesk.TokenCounter = (*TokenCounter)(nil)

// TokenCounter measures prompts locally with the Gemini tokenizer. A
// count covers the whole request Generator sends for the prompt, so the
// system instruction is counted along with it.
type TokenCounter struct {
	tok         *tokenizer.LocalTokenizer
	instruction *genai.Content
}

// TokenOption configures a TokenCounter.
type TokenOption func(*TokenCounter)

// WithInstruction replaces SystemInstruction in counts. An empty text
// counts the prompt alone.
func WithInstruction(text string) TokenOption {
	return func(tc *TokenCounter) {
		if text == "" {
			tc.instruction = nil
			return
		}
		tc.instruction = instructionContent(text)
	}
}

// NewTokenCounter loads the tokenizer for model. An empty model means
// DefaultModel. Loading downloads the tokenizer the first time.
func NewTokenCounter(model string, opts ...TokenOption) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, newsdesk.Errorf(newsdesk.EINTERNAL, "loading tokenizer for %s: %v", model, err)
	}
	tc := &TokenCounter{tok: tok, instruction: instructionContent(SystemInstruction)}
	for _, opt := range opts {
		opt(tc)
	}
	return tc, nil
}

// CountTokens returns the token count of a request carrying prompt. An
// empty prompt is never sent and counts as zero.
func (tc *TokenCounter) CountTokens(ctx context.Context, prompt string) (int, error) {
	if prompt == "" {
		return 0, nil
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, "user")}
	if tc.instruction != nil {
		contents = append(contents, tc.instruction)
	}

	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
