package newsdesk

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

// Correction is an erroneous token and its suggested replacement, located
// in annotated proofreading output.
type Correction struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`

	// Offset is the byte offset of Original in the annotated text.
	Offset int `json:"offset"`

	// end is the byte offset just past the closing parenthesis.
	end int
}

var correctionPattern = regexp.MustCompile(`([\x{4e00}-\x{9fa5}A-Za-z0-9_]+)[(（]([\x{4e00}-\x{9fa5}A-Za-z0-9_]+)[)）]`)

// FindCorrections locates every "原詞(訂正詞)" annotation in text, with
// either half-width or full-width parentheses. Corrections do not overlap
// and are returned in order of appearance.
//
// Chinese text has no word breaks, so the character run before the
// parenthesis usually covers the whole clause. When both tokens are pure
// Han and the run is longer than the correction, only its trailing
// characters, as many as the correction has, are taken as the error. When
// the correction has no Han characters, Han characters leading the run
// are dropped, so 他說teh(the) marks only teh.
func FindCorrections(text string) []Correction {
	var out []Correction
	for _, m := range correctionPattern.FindAllStringSubmatchIndex(text, -1) {
		c := Correction{
			Original:  text[m[2]:m[3]],
			Corrected: text[m[4]:m[5]],
			Offset:    m[2],
			end:       m[1],
		}
		orig := []rune(c.Original)
		n := len([]rune(c.Corrected))
		cut := 0
		switch {
		case isHan(c.Original) && isHan(c.Corrected) && len(orig) > n:
			cut = len(orig) - n
		case !hasHan(c.Corrected):
			for cut < len(orig) && unicode.Is(unicode.Han, orig[cut]) {
				cut++
			}
			if cut == len(orig) {
				cut = 0
			}
		}
		if cut > 0 {
			c.Offset += len(string(orig[:cut]))
			c.Original = string(orig[cut:])
		}
		out = append(out, c)
	}
	return out
}

// FormatProofread renders annotated proofreading output for display. Each
// erroneous token is wrapped in an error-highlight span followed by the
// correction in full-width parentheses; all other text is HTML-escaped.
func FormatProofread(text string) string {
	var sb strings.Builder
	last := 0
	for _, c := range FindCorrections(text) {
		sb.WriteString(html.EscapeString(text[last:c.Offset]))
		sb.WriteString(`<span class="error-highlight">`)
		sb.WriteString(html.EscapeString(c.Original))
		sb.WriteString(`</span>（`)
		sb.WriteString(html.EscapeString(c.Corrected))
		sb.WriteString(`）`)
		last = c.end
	}
	sb.WriteString(html.EscapeString(text[last:]))
	return sb.String()
}

var highlightPattern = regexp.MustCompile(`<span class="error-highlight">([^<]*)</span>（[^）]*）`)

// StripProofread inverts FormatProofread for copying: highlight markup and
// the parenthesised corrections are dropped, keeping the original tokens,
// and the remaining text is unescaped.
func StripProofread(markup string) string {
	plain := highlightPattern.ReplaceAllString(markup, "$1")
	return html.UnescapeString(plain)
}

func hasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

func isHan(s string) bool {
	for _, r := range s {
		if !unicode.Is(unicode.Han, r) {
			return false
		}
	}
	return s != ""
}
