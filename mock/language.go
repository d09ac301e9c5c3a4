package mock

import "github.com/fwojciec/newsdesk"

var _ newsdesk.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of newsdesk.LanguageDetector.
type LanguageDetector struct {
	DetectLanguageFn func(text string) string
}

func (d *LanguageDetector) DetectLanguage(text string) string {
	return d.DetectLanguageFn(text)
}
