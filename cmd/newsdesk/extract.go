package main

import (
	"fmt"
	"unicode/utf8"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	doc, err := deps.Pipeline.Extract(deps.Ctx, c.URL)
	if err != nil {
		return reportError(deps, err)
	}

	if deps.JSON {
		return writeJSON(deps.Stdout, doc)
	}
	fmt.Fprintf(deps.Stdout, "Title: %s\n", doc.Title)
	fmt.Fprintf(deps.Stdout, "Site:  %s\n", doc.SiteName)
	fmt.Fprintf(deps.Stdout, "Chars: %d\n\n", utf8.RuneCountInString(doc.Body))
	fmt.Fprintln(deps.Stdout, doc.Body)
	return nil
}
