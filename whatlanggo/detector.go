// Package whatlanggo implements newsdesk.LanguageDetector with
// RadhiFadlillah/whatlanggo trigram detection.
package whatlanggo

import (
	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/fwojciec/newsdesk"
)

// MinConfidence is the detection confidence below which no language is
// reported.
const MinConfidence = 0.5

// Ensure Detector implements newsdesk.LanguageDetector at compile time.
var _ newsdesk.LanguageDetector = (*Detector)(nil)

// names maps detectable languages to their short Chinese names.
var names = map[whatlanggo.Lang]string{
	whatlanggo.Eng: "英",
	whatlanggo.Jpn: "日",
	whatlanggo.Kor: "韓",
	whatlanggo.Fra: "法",
	whatlanggo.Deu: "德",
	whatlanggo.Spa: "西班牙",
	whatlanggo.Por: "葡萄牙",
	whatlanggo.Ita: "義大利",
	whatlanggo.Rus: "俄",
	whatlanggo.Vie: "越南",
	whatlanggo.Tha: "泰",
	whatlanggo.Ind: "印尼",
	whatlanggo.Tgl: "菲律賓",
	whatlanggo.Arb: "阿拉伯",
	whatlanggo.Nld: "荷蘭",
	whatlanggo.Tur: "土耳其",
}

// Detector guesses the language of article text.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectLanguage returns the Chinese name of the language of text, or ""
// when detection is unreliable or the language has no name here.
func (d *Detector) DetectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	if info.Confidence < MinConfidence {
		return ""
	}
	return names[info.Lang]
}
