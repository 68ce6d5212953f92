package model

// ScrapeTarget is one page to scan for addresses.
type ScrapeTarget struct {
	URL string `json:"url"`
}

// EmailRecord is one address found on a page.
type EmailRecord struct {
	Address   string `json:"address"`
	SourceURL string `json:"source_url"`
	Category  string `json:"category,omitempty"`
}

// ScrapeResult is the outcome of one scrape session.
type ScrapeResult struct {
	SessionID string        `json:"session_id"`
	Target    ScrapeTarget  `json:"target"`
	Title     string        `json:"title,omitempty"`
	Emails    []EmailRecord `json:"emails"`
	Block     BlockType     `json:"block,omitempty"`
	Truncated bool          `json:"truncated,omitempty"`
}

// Empty reports whether no address was found. This is not an error.
func (r *ScrapeResult) Empty() bool {
	return len(r.Emails) == 0
}
