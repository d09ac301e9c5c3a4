package newsdesk

import (
	"regexp"
	"strings"
	"unicode"
)

// TitleSet holds the three headline candidates offered for an article.
// The JSON keys match the labels shown to editors.
type TitleSet struct {
	// Clickbait is the curiosity-hook variant.
	Clickbait string `json:"藏標"`

	// Standard is the neutral variant, usually the source title.
	Standard string `json:"正統"`

	// Creative is the narrative variant.
	Creative string `json:"特別"`
}

var numberPattern = regexp.MustCompile(`\d+`)

// SynthesizeTitles derives three headline candidates from a title hint and
// the article content. It is deterministic and every field is non-empty.
//
// Dates are removed from both inputs first. The leading 20 characters of
// the content, minus commas, periods and whitespace, are the "main
// entity"; when that is shorter than 5 characters and the title is longer,
// the title's leading 10 characters are used instead. The first number in
// the content (or, failing that, in the title) feeds the clickbait hook.
func SynthesizeTitles(rawTitle, content string) TitleSet {
	title := RemoveDates(rawTitle)
	body := RemoveDates(content)

	numbers := numberPattern.FindAllString(body, -1)
	if len(numbers) == 0 {
		numbers = numberPattern.FindAllString(title, -1)
	}

	entity := stripEntity(prefix(body, 20))
	if runeLen(entity) < 5 && runeLen(title) > 5 {
		entity = stripEntity(prefix(title, 10))
	}

	var count string
	if len(numbers) > 0 {
		count = numbers[0] + "個"
	}

	titles := TitleSet{
		Clickbait: "超狂！" + prefix(entity, 6) + "的" + count + "驚人內幕！",
		Standard:  "藝人出席活動，" + prefix(entity, 10) + "...",
		Creative:  "這就是娛樂圈？" + prefix(entity, 8) + "背後的故事",
	}
	if t := strings.TrimSpace(title); t != "" {
		titles.Standard = prefix(t, 25)
	}

	titles.Clickbait = strings.TrimSpace(titles.Clickbait)
	titles.Standard = strings.TrimSpace(titles.Standard)
	titles.Creative = strings.TrimSpace(titles.Creative)
	return titles
}

// stripEntity removes full-width commas, periods and all whitespace.
func stripEntity(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '，' || r == '。' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// prefix returns the first n runes of s, or all of s if it is shorter.
func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func runeLen(s string) int {
	return len([]rune(s))
}
