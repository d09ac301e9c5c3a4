package newsdesk

import (
	"regexp"
	"strings"
)

// DefaultPlaceholder replaces filtered brand names.
const DefaultPlaceholder = "某品牌"

// ScrubConfig lists the brand names and promotional phrases scrubbed from
// article text.
//
// Brand names are replaced literally. If one brand name is a substring of
// another the result depends on list order; keep names disjoint.
type ScrubConfig struct {
	Brands      []string `json:"brands" yaml:"brands"`
	PRPhrases   []string `json:"prPhrases" yaml:"pr_phrases"`
	Placeholder string   `json:"placeholder" yaml:"placeholder"`
}

// DefaultScrubConfig returns the built-in brand and phrase lists.
func DefaultScrubConfig() ScrubConfig {
	return ScrubConfig{
		Brands:      []string{"ETtoday", "XX保養品牌", "YY手機", "某某汽車", "品牌名稱", "公司名稱"},
		PRPhrases:   []string{"感謝品牌", "本次活動旨在", "此次合作", "與會貴賓", "品牌活動", "記者會", "ETtoday報導"},
		Placeholder: DefaultPlaceholder,
	}
}

// Scrubber removes brand names, promotional sentences and doubled
// punctuation from text. A Scrubber is immutable and safe for concurrent
// use.
type Scrubber struct {
	brands      []string
	placeholder string
	prSentences []*regexp.Regexp
}

// NewScrubber compiles a Scrubber from cfg. An empty placeholder defaults
// to DefaultPlaceholder.
func NewScrubber(cfg ScrubConfig) *Scrubber {
	s := &Scrubber{
		brands:      make([]string, 0, len(cfg.Brands)),
		placeholder: cfg.Placeholder,
	}
	if s.placeholder == "" {
		s.placeholder = DefaultPlaceholder
	}
	for _, b := range cfg.Brands {
		if b != "" {
			s.brands = append(s.brands, b)
		}
	}
	for _, p := range cfg.PRPhrases {
		if p == "" {
			continue
		}
		// A sentence is a run without terminators ending in one. The
		// terminator is required, so a trailing unterminated fragment
		// containing the phrase is kept.
		re := regexp.MustCompile(`[^。？！]*` + regexp.QuoteMeta(p) + `[^。？！]*[。？！]`)
		s.prSentences = append(s.prSentences, re)
	}
	return s
}

// Scrub applies the canonical passes: brand filter, promotional-sentence
// removal, then punctuation fix-up. Dates are not removed; see RemoveDates.
func (s *Scrubber) Scrub(text string) string {
	return s.FixPunctuation(s.RemovePRSentences(s.FilterBrands(text)))
}

// FilterBrands replaces every occurrence of a configured brand name with
// the placeholder.
func (s *Scrubber) FilterBrands(text string) string {
	for _, b := range s.brands {
		text = strings.ReplaceAll(text, b, s.placeholder)
	}
	return text
}

// RemovePRSentences deletes every sentence containing a configured
// promotional phrase, including its terminator.
func (s *Scrubber) RemovePRSentences(text string) string {
	for _, re := range s.prSentences {
		text = re.ReplaceAllLiteralString(text, "")
	}
	return text
}

var (
	doubledComma  = regexp.MustCompile(`，{2,}`)
	doubledPeriod = regexp.MustCompile(`。{2,}`)
)

// FixPunctuation collapses a doubled full-width comma or period into one.
// Longer runs collapse too, so the pass is idempotent.
func (s *Scrubber) FixPunctuation(text string) string {
	text = doubledComma.ReplaceAllLiteralString(text, "，")
	return doubledPeriod.ReplaceAllLiteralString(text, "。")
}
