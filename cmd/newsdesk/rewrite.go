package main

import (
	"fmt"

	"github.com/fwojciec/newsdesk/pipeline"
	"golang.org/x/sync/errgroup"
)

// Run executes the rewrite-url command. Articles are processed
// concurrently and printed in argument order; one failure does not stop
// the others.
func (c *RewriteURLCmd) Run(deps *Dependencies) error {
	results := make([]*pipeline.Result, len(c.URLs))
	errs := make([]error, len(c.URLs))

	var g errgroup.Group
	g.SetLimit(max(c.Concurrency, 1))
	for i, url := range c.URLs {
		g.Go(func() error {
			results[i], errs[i] = deps.Pipeline.RewriteURL(deps.Ctx, url)
			return nil
		})
	}
	_ = g.Wait()

	var firstErr error
	for i, url := range c.URLs {
		if len(c.URLs) > 1 && !deps.JSON {
			fmt.Fprintf(deps.Stdout, "=== %s\n", url)
		}
		if errs[i] != nil {
			fmt.Fprintf(deps.Stderr, "%s: ", url)
			_ = reportError(deps, errs[i])
			if firstErr == nil {
				firstErr = errs[i]
			}
			continue
		}
		if err := printResult(deps, results[i]); err != nil {
			return err
		}
	}
	return firstErr
}

// Run executes the draft command.
func (c *DraftCmd) Run(deps *Dependencies) error {
	text, err := readInput(deps, c.File)
	if err != nil {
		return reportError(deps, err)
	}
	opts := c.options()
	opts.FilterBrands = c.FilterBrands

	res, err := deps.Pipeline.RewriteDraft(deps.Ctx, text, opts)
	if err != nil {
		return reportError(deps, err)
	}
	return printResult(deps, res)
}

// Run executes the translate command.
func (c *TranslateCmd) Run(deps *Dependencies) error {
	res, err := deps.Pipeline.TranslateRewrite(deps.Ctx, c.URL, pipeline.Options{SourceLanguage: c.Lang})
	if err != nil {
		return reportError(deps, err)
	}
	return printResult(deps, res)
}
