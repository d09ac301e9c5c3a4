package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/newsdesk"
	"github.com/fwojciec/newsdesk/pipeline"
)

// printResult writes res as text, or as an API envelope with --json.
func printResult(deps *Dependencies, res *pipeline.Result) error {
	if deps.JSON {
		return writeJSON(deps.Stdout, map[string]any{"content": res})
	}

	if !res.Parsed {
		fmt.Fprintf(deps.Stderr, "warning: %s, showing raw model output\n", newsdesk.ParseFailureSentinel)
	}
	fmt.Fprintf(deps.Stdout, "藏標: %s\n", res.Titles.Clickbait)
	fmt.Fprintf(deps.Stdout, "正統: %s\n", res.Titles.Standard)
	fmt.Fprintf(deps.Stdout, "特別: %s\n", res.Titles.Creative)
	if res.OriginalSource != "" {
		fmt.Fprintf(deps.Stdout, "來源: %s\n", res.OriginalSource)
	}
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, res.Text)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// reportError prints err and its hint to stderr and returns it.
func reportError(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", newsdesk.ErrorMessage(err))
	if hint := newsdesk.ErrorHint(err); hint != "" {
		fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	return err
}

// readInput returns the contents of path, or of stdin when path is empty
// or "-".
func readInput(deps *Dependencies, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		if deps.Stdin == nil {
			return "", newsdesk.Errorf(newsdesk.EINVALID, "no input file and no stdin")
		}
		data, err = io.ReadAll(deps.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", newsdesk.Errorf(newsdesk.EINVALID, "reading input: %v", err)
	}
	return strings.TrimSpace(string(data)), nil
}
