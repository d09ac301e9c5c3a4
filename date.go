package newsdesk

import "regexp"

// datePatterns are removed in order, so the long form goes before the
// month-day form it contains.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}年\d{1,2}月\d{1,2}日`),
	regexp.MustCompile(`\d{1,2}月\d{1,2}日`),
	regexp.MustCompile(`週[一二三四五六日]`),
	regexp.MustCompile(`\(\d{1,2}/\d{1,2}\)`),
}

// RemoveDates strips full dates (2024年5月20日), month-day dates (5月20日),
// weekday glyphs (週一) and parenthesised month/day markers ((5/20)).
func RemoveDates(text string) string {
	for _, re := range datePatterns {
		text = re.ReplaceAllLiteralString(text, "")
	}
	return text
}
