package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/contact-finder/internal/export"
	"github.com/sells-group/contact-finder/internal/model"
	"github.com/sells-group/contact-finder/internal/render"
)

// researcher is the AI lookup surface used by the CLI and the HTTP server.
type researcher interface {
	Research(ctx context.Context, q model.ContactQuery) (*model.ResearchResult, error)
	Models(ctx context.Context) ([]string, error)
}

var (
	lookupQuery model.ContactQuery
	lookupOut   outputOptions
)

var lookupCmd = &cobra.Command{
	Use:     "lookup",
	Short:   "Research leadership contacts for a company",
	Example: `  contact-finder lookup --company "Acme Corp" --website acme.com --country US
  contact-finder lookup --company "Acme Corp" --csv -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLookup(cmd.Context(), cmd.OutOrStdout(), newResearchService(cfg), lookupQuery, lookupOut, export.SystemClipboard{})
	},
}

func runLookup(ctx context.Context, stdout io.Writer, svc researcher, q model.ContactQuery, opts outputOptions, cb export.Clipboard) error {
	res, err := withSpinner(ctx, fmt.Sprintf("researching %s", q.CompanyName), func(ctx context.Context) (*model.ResearchResult, error) {
		return svc.Research(ctx, q)
	})
	if err != nil {
		return err
	}

	switch {
	case opts.json:
		if err := writeJSON(stdout, res); err != nil {
			return err
		}
	case opts.csvPath != "-" || !res.Structured():
		// A raw answer has no CSV form, so it is shown even with --csv -.
		render.Research(stdout, res)
	}

	if !res.Structured() {
		if opts.csvPath != "" {
			fmt.Fprintln(os.Stderr, "no contact table was parsed; csv not written")
		}
		if opts.copy {
			if err := export.Copy(cb, res.Raw); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "copied raw answer to clipboard")
		}
		return nil
	}

	if opts.csvPath == "" && !opts.copy {
		return nil
	}
	csvText, err := export.ContactsCSV(res.Contacts)
	if err != nil {
		return err
	}
	if opts.csvPath == "auto" {
		opts.csvPath = export.ContactsFileName(q.CompanyName)
	}
	return emitCSV(stdout, opts, csvText, cb)
}

func init() {
	f := lookupCmd.Flags()
	f.StringVar(&lookupQuery.CompanyName, "company", "", "company name (required)")
	f.StringVar(&lookupQuery.Website, "website", "", "company website")
	f.StringVar(&lookupQuery.Country, "country", "", "country the company is based in")
	f.StringVar(&lookupQuery.Model, "model", "", "OpenRouter model id (default from config)")
	f.StringVar(&lookupOut.csvPath, "csv", "", `write contacts as CSV to a path, "-" for stdout, or "auto" for <company>_contacts.csv`)
	f.BoolVar(&lookupOut.copy, "copy", false, "copy the CSV (or raw answer) to the clipboard")
	f.BoolVar(&lookupOut.json, "json", false, "print the result as JSON")
	_ = lookupCmd.MarkFlagRequired("company")
	rootCmd.AddCommand(lookupCmd)
}
