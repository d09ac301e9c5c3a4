package mock

import "github.com/fwojciec/newsdesk"

var _ newsdesk.Converter = (*Converter)(nil)

// Converter is a mock implementation of newsdesk.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
