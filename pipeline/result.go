package pipeline

import (
	"encoding/json"

	"github.com/fwojciec/newsdesk"
)

// Kind identifies the operation that produced a Result. Its value is the
// JSON field the text is reported under.
type Kind string

// Result kinds, one per operation.
const (
	KindRewrite   Kind = "rewrittenText"
	KindDraft     Kind = "rewrittenNewsDraftText"
	KindTranslate Kind = "translatedRewrittenText"
	KindInterview Kind = "generatedText"
	KindSocial    Kind = "celebrityNewsText"
	KindVideo     Kind = "newsContent"
	KindProofread Kind = "correctedText"
)

// Result is the normalized output of one pipeline run.
type Result struct {
	Kind   Kind
	Text   string
	Titles newsdesk.TitleSet

	// OriginalSource names the outlet the text came from, when known.
	OriginalSource string

	// Markup is the display form of proofread text.
	Markup string

	// Parsed is false when the generator output was not valid JSON and
	// Text is the model's raw reply.
	Parsed bool
}

// MarshalJSON encodes r as the body of an API response: the text under
// its kind field, the titles under "optimizedTitles", and the optional
// fields only when set. "parseFailed" appears only on failure.
func (r Result) MarshalJSON() ([]byte, error) {
	body := map[string]any{
		string(r.Kind):    r.Text,
		"optimizedTitles": r.Titles,
	}
	if r.OriginalSource != "" {
		body["originalSource"] = r.OriginalSource
	}
	if r.Markup != "" {
		body["markup"] = r.Markup
	}
	if !r.Parsed {
		body["parseFailed"] = true
	}
	return json.Marshal(body)
}
