// Package scrape runs the single-page email extraction pipeline.
package scrape

import (
	"context"

	"github.com/sells-group/contact-finder/internal/model"
)

// Scraper fetches one target page and returns the addresses found on it.
type Scraper interface {
	Scrape(ctx context.Context, target model.ScrapeTarget) (*model.ScrapeResult, error)
}

// Options controls post-processing of extracted addresses.
type Options struct {
	// MaxEmails caps the result. Zero means no cap.
	MaxEmails int

	// Categorize tags each address with a mailbox category.
	Categorize bool

	// FilterPlaceholders drops placeholder and excluded-domain addresses.
	FilterPlaceholders bool

	ExcludedDomains []string
}
