// Package fetcher downloads single web pages for the scraper.
package fetcher

import (
	"context"

	"github.com/sells-group/contact-finder/internal/model"
)

// Fetcher defines the interface for downloading a page.
type Fetcher interface {
	// Fetch performs a GET for the URL and returns the decoded page.
	Fetch(ctx context.Context, url string) (*model.Page, error)
}
