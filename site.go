package newsdesk

import (
	"net/url"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// knownSites maps a domain suffix to the outlet's display name.
var knownSites = map[string]string{
	"ettoday.net":        "ETtoday",
	"udn.com":            "聯合新聞網",
	"tvbs.com.tw":        "TVBS新聞網",
	"ltn.com.tw":         "自由時報",
	"chinatimes.com":     "中時新聞網",
	"setn.com":           "三立新聞網",
	"cna.com.tw":         "中央社",
	"storm.mg":           "風傳媒",
	"ftvnews.com.tw":     "民視新聞網",
	"news.pts.org.tw":    "公視新聞網",
	"reuters.com":        "路透社",
	"apnews.com":         "美聯社",
	"bbc.com":            "BBC新聞",
	"cnn.com":            "CNN新聞",
	"nytimes.com":        "紐約時報",
	"washingtonpost.com": "華盛頓郵報",
}

// siteSuffixes holds the keys of knownSites, longest first, so that a more
// specific suffix wins over a shorter one.
var siteSuffixes = func() []string {
	suffixes := make([]string, 0, len(knownSites))
	for s := range knownSites {
		suffixes = append(suffixes, s)
	}
	sort.Slice(suffixes, func(i, j int) bool {
		if len(suffixes[i]) != len(suffixes[j]) {
			return len(suffixes[i]) > len(suffixes[j])
		}
		return suffixes[i] < suffixes[j]
	})
	return suffixes
}()

// SiteName infers a human-readable outlet name from a page URL.
//
// Known news domains map to their display name. Other hosts fall back to
// the capitalised first DNS label ("example.org" becomes "Example"); a
// single-label host is returned as is. Returns an empty string if the URL
// cannot be parsed.
func SiteName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return ""
	}

	for _, suffix := range siteSuffixes {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return knownSites[suffix]
		}
	}

	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return host
	}
	return capitalize(labels[0])
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
