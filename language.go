package newsdesk

// LanguageDetector guesses the language of text.
type LanguageDetector interface {
	// DetectLanguage returns a short Chinese language name such as "英"
	// or "日", or "" when the language cannot be determined.
	DetectLanguage(text string) string
}
