package newsdesk

import (
	"encoding/json"
	"strings"
)

// ParseFailureSentinel fills the title lists when generator output could
// not be decoded.
const ParseFailureSentinel = "AI 返回內容無法解析為 JSON"

// GenerationResult is the structured form of a generator's completion.
type GenerationResult struct {
	Content     string   `json:"content"`
	LongTitles  []string `json:"longTitles"`
	ShortTitles []string `json:"shortTitles"`

	// Parsed reports whether the completion decoded as JSON. When false,
	// Content is the raw completion and the title lists hold only
	// ParseFailureSentinel.
	Parsed bool `json:"parsed"`
}

// contentSynonyms are consulted in order when "content" is missing or
// empty; different prompts ask for differently named fields.
var contentSynonyms = []string{
	"generatedText",
	"rewrittenText",
	"translatedRewrittenText",
	"celebrityNewsText",
	"correctedText",
	"newsContent",
}

const (
	fenceOpen  = "```json"
	fenceClose = "```"
)

// ParseGeneration recovers a GenerationResult from raw generator output.
// It never fails: output that is not JSON is returned verbatim as content
// with Parsed set to false.
//
// A leading "```json" and a trailing "```" are stripped before decoding.
// Title lists are read from long_titles/short_titles, or their camelCase
// spellings.
func ParseGeneration(raw string) GenerationResult {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, fenceOpen)
	cleaned = strings.TrimSuffix(cleaned, fenceClose)
	cleaned = strings.TrimSpace(cleaned)

	var v any
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return GenerationResult{
			Content:     cleaned,
			LongTitles:  []string{ParseFailureSentinel},
			ShortTitles: []string{ParseFailureSentinel},
		}
	}

	result := GenerationResult{
		LongTitles:  []string{},
		ShortTitles: []string{},
		Parsed:      true,
	}
	fields, ok := v.(map[string]any)
	if !ok {
		return result
	}

	result.Content, _ = fields["content"].(string)
	result.LongTitles = stringList(fields, "long_titles", "longTitles")
	result.ShortTitles = stringList(fields, "short_titles", "shortTitles")

	for _, name := range contentSynonyms {
		if result.Content != "" {
			break
		}
		result.Content, _ = fields[name].(string)
	}
	return result
}

// stringList returns the string elements of the first array-typed field
// among keys. Non-string elements are skipped.
func stringList(fields map[string]any, keys ...string) []string {
	out := []string{}
	for _, k := range keys {
		arr, ok := fields[k].([]any)
		if !ok {
			continue
		}
		for _, item := range arr {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return out
}
