package main

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/contact-finder/internal/model"
)

type mockResearcher struct {
	mock.Mock
}

func (m *mockResearcher) Research(ctx context.Context, q model.ContactQuery) (*model.ResearchResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResearchResult), args.Error(1)
}

func (m *mockResearcher) Models(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockScraper struct {
	mock.Mock
}

func (m *mockScraper) Scrape(ctx context.Context, target model.ScrapeTarget) (*model.ScrapeResult, error) {
	args := m.Called(ctx, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScrapeResult), args.Error(1)
}

type memClipboard struct {
	text string
}

func (m *memClipboard) WriteAll(text string) error {
	m.text = text
	return nil
}

func structuredResult() *model.ResearchResult {
	return &model.ResearchResult{
		Query: model.ContactQuery{CompanyName: "Acme Corp"},
		Model: "perplexity/sonar-pro",
		Kind:  model.ResultStructured,
		Contacts: []model.ContactResult{
			{Name: "Jane Doe", Title: "CEO", Email: "jane@acme.com", SourceCitation: "https://acme.com/team"},
		},
		Citations: []model.Citation{{Label: "Team", URL: "https://acme.com/team"}},
		Raw:       "| Name | Role |\n|---|---|\n| Jane Doe | CEO |",
	}
}

func scrapeResult() *model.ScrapeResult {
	return &model.ScrapeResult{
		SessionID: "session-1",
		Target:    model.ScrapeTarget{URL: "https://acme.com"},
		Emails: []model.EmailRecord{
			{Address: "sales@acme.com", SourceURL: "https://acme.com", Category: "sales"},
		},
	}
}
