package scrape

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/contact-finder/internal/extract"
	"github.com/sells-group/contact-finder/internal/failure"
	"github.com/sells-group/contact-finder/internal/fetcher"
	"github.com/sells-group/contact-finder/internal/model"
)

// Service implements Scraper on top of a page fetcher.
type Service struct {
	fetcher fetcher.Fetcher
	opts    Options
	newID   func() string
}

// NewService creates a scrape service.
func NewService(f fetcher.Fetcher, opts Options) *Service {
	return &Service{
		fetcher: f,
		opts:    opts,
		newID:   func() string { return uuid.New().String() },
	}
}

// Scrape fetches target and extracts its email addresses. A page with no
// addresses is a valid, empty result.
func (s *Service) Scrape(ctx context.Context, target model.ScrapeTarget) (*model.ScrapeResult, error) {
	target.URL = strings.TrimSpace(target.URL)
	if target.URL == "" {
		return nil, failure.InvalidInput("url is required")
	}

	sessionID := s.newID()
	log := zap.L().With(
		zap.String("session_id", sessionID),
		zap.String("url", target.URL),
	)
	log.Info("scrape: starting")
	start := time.Now()

	page, err := s.fetcher.Fetch(ctx, target.URL)
	if err != nil {
		log.Warn("scrape: fetch failed", zap.Error(err))
		return nil, eris.Wrap(err, "scrape: fetch page")
	}

	source := page.FinalURL
	if source == "" {
		source = page.URL
	}
	records := extract.FromHTML(page.Body, source)
	records = s.postProcess(records)

	result := &model.ScrapeResult{
		SessionID: sessionID,
		Target:    target,
		Title:     page.Title,
		Emails:    records,
		Block:     page.Block,
	}
	if s.opts.MaxEmails > 0 && len(result.Emails) > s.opts.MaxEmails {
		result.Emails = result.Emails[:s.opts.MaxEmails]
		result.Truncated = true
	}

	if page.Block != model.BlockNone {
		log.Warn("scrape: page looks like an anti-bot challenge", zap.String("block", string(page.Block)))
	}
	log.Info("scrape: complete",
		zap.Int("emails", len(result.Emails)),
		zap.Bool("truncated", result.Truncated),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

func (s *Service) postProcess(records []model.EmailRecord) []model.EmailRecord {
	if s.opts.FilterPlaceholders {
		addrs := make([]string, len(records))
		for i, r := range records {
			addrs[i] = r.Address
		}
		keep := make(map[string]bool)
		for _, a := range extract.Filter(addrs, extract.FilterOptions{ExcludedDomains: s.opts.ExcludedDomains}) {
			keep[a] = true
		}
		kept := records[:0]
		for _, r := range records {
			if keep[r.Address] {
				kept = append(kept, r)
			}
		}
		records = kept
	}
	if s.opts.Categorize {
		for i := range records {
			records[i].Category = extract.Categorize(records[i].Address)
		}
	}
	return records
}
