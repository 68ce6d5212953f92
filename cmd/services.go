package main

import (
	"github.com/sells-group/contact-finder/internal/config"
	"github.com/sells-group/contact-finder/internal/fetcher"
	"github.com/sells-group/contact-finder/internal/research"
	"github.com/sells-group/contact-finder/internal/resilience"
	"github.com/sells-group/contact-finder/internal/scrape"
	"github.com/sells-group/contact-finder/pkg/openrouter"
)

// newResearchService wires the AI lookup pipeline from configuration.
func newResearchService(c *config.Config) *research.Service {
	client := openrouter.NewClient(c.OpenRouter.Key,
		openrouter.WithBaseURL(c.OpenRouter.BaseURL),
		openrouter.WithModel(c.OpenRouter.Model),
		openrouter.WithTimeout(c.OpenRouter.Timeout()),
		openrouter.WithAppInfo(c.OpenRouter.Referer, c.OpenRouter.AppTitle),
	)
	return research.NewService(client, research.Config{
		APIKey: c.OpenRouter.Key,
		Model:  c.OpenRouter.Model,
		Retry:  resilience.FromSettings(c.Fetch.MaxRetries, c.Fetch.Delay()),
	})
}

// newScrapeService wires the page scraping pipeline from configuration.
func newScrapeService(c *config.Config) *scrape.Service {
	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  c.Fetch.UserAgent,
		MaxRetries: c.Fetch.MaxRetries,
		Delay:      c.Fetch.Delay(),
		Validate: fetcher.ValidateOptions{
			MaxURLLength:       c.Fetch.MaxURLLength,
			RestrictPrivateIPs: c.Fetch.RestrictPrivateIPs,
		},
	})
	return scrape.NewService(f, scrape.Options{
		MaxEmails:          c.Extract.MaxEmails,
		Categorize:         c.Extract.Categorize,
		FilterPlaceholders: c.Extract.FilterPlaceholders,
		ExcludedDomains:    c.Extract.ExcludedDomains,
	})
}
