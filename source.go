package newsdesk

// SourceDocument is the raw material recovered from a fetched page.
type SourceDocument struct {
	// Title is the page title, or the first level-1 heading when the
	// page has no <title>.
	Title string `json:"title"`

	// Body is the article text. Paragraphs are separated by blank lines.
	Body string `json:"body"`

	// SiteName is the outlet name inferred from the page URL's host.
	SiteName string `json:"siteName"`
}

// Extractor locates the article title and body in raw HTML.
type Extractor interface {
	// Extract processes raw HTML fetched from pageURL.
	// Returns EINSUFFICIENT if no usable article text was found.
	Extract(html, pageURL string) (*SourceDocument, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}
