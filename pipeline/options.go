package pipeline

import "fmt"

// Tone selects the register of generated interview articles.
type Tone string

// Supported tones.
const (
	ToneFormal       Tone = "formal"
	ToneEngaging     Tone = "engaging"
	ToneAnnouncement Tone = "announcement"
	ToneNeutral      Tone = "neutral"
)

// ParseTone returns the Tone named by s. Unknown and empty names map to
// ToneNeutral.
func ParseTone(s string) Tone {
	switch t := Tone(s); t {
	case ToneFormal, ToneEngaging, ToneAnnouncement:
		return t
	default:
		return ToneNeutral
	}
}

// instruction is the prompt sentence for t.
func (t Tone) instruction() string {
	switch t {
	case ToneFormal:
		return "語氣請保持正式嚴謹。"
	case ToneEngaging:
		return "語氣請保持生動引人，適合大眾閱讀。"
	case ToneAnnouncement:
		return "語氣請保持公告式，如同官方發布。"
	default:
		return "語氣請保持中立客觀。"
	}
}

// Options are the optional request parameters shared by operations. Zero
// values mean "no constraint".
type Options struct {
	MinLength     int
	MaxLength     int
	NumParagraphs int
	Tone          Tone

	// SourceLanguage names the language of a foreign article. Empty and
	// "auto" use the pipeline's language detector, or let the model
	// decide when none is set. Videos take their caption language from
	// Video.Language instead.
	SourceLanguage string

	// FilterBrands enables the brand filter for draft rewrites. Other
	// operations always filter.
	FilterBrands bool
}

// lengthInstruction describes the requested article length. A range is
// used only when MaxLength exceeds MinLength.
func (o Options) lengthInstruction() string {
	switch {
	case o.MinLength > 0 && o.MaxLength > o.MinLength:
		return fmt.Sprintf("長度控制在約 %d 到 %d 字之間。", o.MinLength, o.MaxLength)
	case o.MinLength > 0:
		return fmt.Sprintf("長度至少 %d 字。", o.MinLength)
	default:
		return ""
	}
}

func (o Options) paragraphInstruction() string {
	if o.NumParagraphs <= 0 {
		return ""
	}
	return fmt.Sprintf("分成約 %d 段。", o.NumParagraphs)
}

// languageLabel names the source language in a translation prompt.
func languageLabel(lang string) string {
	if lang == "" || lang == "auto" {
		return "外語"
	}
	return lang + "語"
}
