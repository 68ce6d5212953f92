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
	"github.com/sells-group/contact-finder/internal/scrape"
)

var (
	scrapeURL string
	scrapeOut outputOptions
)

var scrapeCmd = &cobra.Command{
	Use:     "scrape",
	Short:   "Extract email addresses from a web page",
	Example: `  contact-finder scrape --url https://acme.com/contact --csv auto`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScrape(cmd.Context(), cmd.OutOrStdout(), newScrapeService(cfg), model.ScrapeTarget{URL: scrapeURL}, scrapeOut, export.SystemClipboard{})
	},
}

func runScrape(ctx context.Context, stdout io.Writer, svc scrape.Scraper, target model.ScrapeTarget, opts outputOptions, cb export.Clipboard) error {
	res, err := withSpinner(ctx, fmt.Sprintf("scraping %s", target.URL), func(ctx context.Context) (*model.ScrapeResult, error) {
		return svc.Scrape(ctx, target)
	})
	if err != nil {
		return err
	}

	switch {
	case opts.json:
		if err := writeJSON(stdout, res); err != nil {
			return err
		}
	case opts.csvPath != "-":
		render.Emails(stdout, res)
	}

	if opts.csvPath == "" && !opts.copy {
		return nil
	}
	// An empty result still writes the header row; only the clipboard is
	// left untouched.
	csvText, err := export.EmailsCSV(res.Emails)
	if err != nil {
		return err
	}
	if res.Empty() {
		opts.copy = false
		if opts.csvPath == "-" && !opts.json {
			fmt.Fprintln(os.Stderr, render.NoEmailsMessage)
		}
	}
	if opts.csvPath == "auto" {
		opts.csvPath = export.EmailsFileName
	}
	return emitCSV(stdout, opts, csvText, cb)
}

func init() {
	f := scrapeCmd.Flags()
	f.StringVar(&scrapeURL, "url", "", "page URL to scan (required)")
	f.StringVar(&scrapeOut.csvPath, "csv", "", `write addresses as CSV to a path, "-" for stdout, or "auto" for extracted_emails.csv`)
	f.BoolVar(&scrapeOut.copy, "copy", false, "copy the CSV to the clipboard")
	f.BoolVar(&scrapeOut.json, "json", false, "print the result as JSON")
	_ = scrapeCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(scrapeCmd)
}
