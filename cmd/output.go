package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
	"github.com/rotisserie/eris"

	"github.com/sells-group/contact-finder/internal/export"
)

// outputOptions are the flags shared by lookup and scrape.
type outputOptions struct {
	csvPath string // "-" writes to stdout
	copy    bool
	json    bool
}

// withSpinner runs fn while a spinner turns on stderr. Nothing is drawn when
// stderr is not a terminal.
func withSpinner[T any](ctx context.Context, suffix string, fn func(context.Context) (T, error)) (T, error) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " " + suffix
		s.Start()
		defer s.Stop()
	}
	return fn(ctx)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode json")
}

// emitCSV writes csvText to stdout ("-") or to path, and optionally to the
// clipboard.
func emitCSV(stdout io.Writer, opts outputOptions, csvText string, cb export.Clipboard) error {
	switch opts.csvPath {
	case "":
	case "-":
		if _, err := io.WriteString(stdout, csvText); err != nil {
			return eris.Wrap(err, "write csv")
		}
	default:
		if err := os.WriteFile(opts.csvPath, []byte(csvText), 0o644); err != nil {
			return eris.Wrapf(err, "write csv %s", opts.csvPath)
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", opts.csvPath)
	}
	if opts.copy {
		if err := export.Copy(cb, csvText); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "copied to clipboard")
	}
	return nil
}
