package main

import "fmt"

// Run executes the proofread command. Without --markup the model's
// annotated text is printed as is.
func (c *ProofreadCmd) Run(deps *Dependencies) error {
	text, err := readInput(deps, c.File)
	if err != nil {
		return reportError(deps, err)
	}

	res, err := deps.Pipeline.Proofread(deps.Ctx, text)
	if err != nil {
		return reportError(deps, err)
	}

	if deps.JSON {
		return printResult(deps, res)
	}
	if c.Markup {
		fmt.Fprintln(deps.Stdout, res.Markup)
		return nil
	}
	fmt.Fprintln(deps.Stdout, res.Text)
	return nil
}
