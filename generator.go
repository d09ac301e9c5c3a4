package newsdesk

import "context"

// Generator is the text-generation capability: given a prompt it returns
// the model's completion. Failures are reported with EGENERATE.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
