package model

import (
	"strings"

	"github.com/sells-group/contact-finder/internal/failure"
)

// ContactQuery is one AI lookup request.
type ContactQuery struct {
	CompanyName string `json:"company_name"`
	Website     string `json:"website,omitempty"`
	Country     string `json:"country,omitempty"`
	Model       string `json:"model,omitempty"` // overrides the configured model
}

// Validate checks that the query names a company.
func (q ContactQuery) Validate() error {
	if strings.TrimSpace(q.CompanyName) == "" {
		return failure.InvalidInput("company name is required")
	}
	return nil
}

// ContactResult is one leadership contact parsed from an AI answer.
type ContactResult struct {
	Name           string `json:"name"`
	Title          string `json:"title"`
	Email          string `json:"email,omitempty"`
	LinkedInURL    string `json:"linkedin_url,omitempty"`
	CompanyEmail   string `json:"company_email,omitempty"`
	SourceCitation string `json:"source_citation,omitempty"`
}

// Citation is a source link found in an AI answer.
type Citation struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// ResultKind tags how an AI answer was interpreted.
type ResultKind string

const (
	// ResultStructured means at least one contact row was parsed.
	ResultStructured ResultKind = "structured"
	// ResultRawText means nothing could be parsed; only Raw is meaningful.
	ResultRawText ResultKind = "raw_text"
)

// ResearchResult is the outcome of one AI lookup.
type ResearchResult struct {
	Query     ContactQuery    `json:"query"`
	Model     string          `json:"model"`
	Kind      ResultKind      `json:"kind"`
	Contacts  []ContactResult `json:"contacts"`
	Citations []Citation      `json:"citations"`
	Raw       string          `json:"raw"`
}

// Structured reports whether the answer yielded contact rows.
func (r *ResearchResult) Structured() bool {
	return r.Kind == ResultStructured
}
