package research

import (
	"regexp"
	"strings"

	"github.com/sells-group/contact-finder/internal/extract"
	"github.com/sells-group/contact-finder/internal/model"
)

var (
	mdLinkRe    = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)\s]+)\)`)
	bareURLRe   = regexp.MustCompile(`https?://[^\s<>()\[\]"'|]+`)
	footnoteRe  = regexp.MustCompile(`\[\d+\]`)
	separatorRe = regexp.MustCompile(`^:?-{3,}:?$`)
	listMarkRe  = regexp.MustCompile(`^(?:[-*+]|\d+[.)])\s*`)
)

type column int

const (
	colIgnored column = iota
	colName
	colTitle
	colLinkedIn
	colEmail
	colCompanyEmail
	colSource
)

var placeholderCells = map[string]bool{
	"": true, "-": true, "--": true, "—": true, "–": true, "n/a": true, "na": true,
	"none": true, "null": true, "unknown": true, "not found": true, "not available": true,
	"not listed": true, "not public": true, "not publicly available": true, "tbd": true,
}

// ParseResponse interprets a model answer on a best-effort basis. When no
// markdown table row yields a named contact, the result is raw_text and Raw
// is the only meaningful field. Citations are collected either way.
func ParseResponse(text string) model.ResearchResult {
	result := model.ResearchResult{
		Kind:      model.ResultRawText,
		Contacts:  []model.ContactResult{},
		Citations: []model.Citation{},
		Raw:       text,
	}

	var block []string
	var prose []string
	flush := func() {
		result.Contacts = append(result.Contacts, parseTable(block)...)
		block = nil
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "|") {
			block = append(block, line)
			continue
		}
		flush()
		prose = append(prose, line)
	}
	flush()

	if len(result.Contacts) > 0 {
		result.Kind = model.ResultStructured
	}
	result.Citations = parseCitations(text, prose)
	return result
}

// parseTable turns one contiguous block of pipe-delimited lines into contacts.
// Blocks without a recognizable name column are ignored.
func parseTable(lines []string) []model.ContactResult {
	var header []column
	var contacts []model.ContactResult
	for _, line := range lines {
		cells := splitRow(line)
		if isSeparator(cells) {
			continue
		}
		if header == nil {
			header = mapHeader(cells)
			if !hasColumn(header, colName) {
				return nil
			}
			continue
		}
		if c, ok := buildContact(header, cells); ok {
			contacts = append(contacts, c)
		}
	}
	return contacts
}

func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func isSeparator(cells []string) bool {
	for _, c := range cells {
		if !separatorRe.MatchString(strings.ReplaceAll(c, " ", "")) {
			return false
		}
	}
	return len(cells) > 0
}

func mapHeader(cells []string) []column {
	cols := make([]column, len(cells))
	for i, c := range cells {
		cols[i] = classifyHeader(c)
	}
	return cols
}

func classifyHeader(cell string) column {
	h := strings.ToLower(stripMarkup(cell))
	switch {
	case strings.Contains(h, "linkedin"):
		return colLinkedIn
	case strings.Contains(h, "mail") && (strings.Contains(h, "general") || strings.Contains(h, "company")):
		return colCompanyEmail
	case strings.Contains(h, "mail"):
		return colEmail
	case strings.Contains(h, "source") || strings.Contains(h, "citation") || strings.Contains(h, "reference"):
		return colSource
	case strings.Contains(h, "role") || strings.Contains(h, "title") || strings.Contains(h, "position") ||
		strings.Contains(h, "designation") || strings.Contains(h, "job"):
		return colTitle
	case strings.Contains(h, "name") && !strings.Contains(h, "company"), h == "contact", h == "person":
		return colName
	default:
		return colIgnored
	}
}

func hasColumn(cols []column, want column) bool {
	for _, c := range cols {
		if c == want {
			return true
		}
	}
	return false
}

func buildContact(header []column, cells []string) (model.ContactResult, bool) {
	var c model.ContactResult
	for i, col := range header {
		if i >= len(cells) {
			break
		}
		raw := cells[i]
		switch col {
		case colName:
			c.Name = cleanText(raw)
		case colTitle:
			c.Title = cleanText(raw)
		case colLinkedIn:
			c.LinkedInURL = cleanURL(raw)
		case colEmail:
			c.Email = firstEmail(raw)
		case colCompanyEmail:
			c.CompanyEmail = firstEmail(raw)
		case colSource:
			if u := cleanURL(raw); u != "" {
				c.SourceCitation = u
			} else {
				c.SourceCitation = cleanText(raw)
			}
		}
	}
	return c, c.Name != ""
}

// stripMarkup removes emphasis, code ticks and footnote markers, and reduces
// markdown links to their text.
func stripMarkup(s string) string {
	s = mdLinkRe.ReplaceAllString(s, "$1")
	s = footnoteRe.ReplaceAllString(s, "")
	s = strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
	return strings.TrimSpace(s)
}

func cleanText(cell string) string {
	s := stripMarkup(cell)
	if placeholderCells[strings.ToLower(s)] {
		return ""
	}
	return s
}

// cleanURL returns the URL in a cell: a markdown link target, a bare URL, or
// a scheme-less linkedin.com path.
func cleanURL(cell string) string {
	if m := mdLinkRe.FindStringSubmatch(cell); len(m) > 2 {
		return m[2]
	}
	if m := bareURLRe.FindString(cell); m != "" {
		return trimURL(m)
	}
	s := cleanText(cell)
	if strings.HasPrefix(strings.ToLower(s), "linkedin.com/") || strings.HasPrefix(strings.ToLower(s), "www.linkedin.com/") {
		return "https://" + s
	}
	return ""
}

func firstEmail(cell string) string {
	if addrs := extract.Emails(cell); len(addrs) > 0 {
		return addrs[0]
	}
	return ""
}

func trimURL(u string) string {
	return strings.TrimRight(u, ".,;:!?*_")
}

// parseCitations collects markdown links anywhere in the answer, then bare
// URLs on non-table lines, deduplicated by URL.
func parseCitations(text string, prose []string) []model.Citation {
	citations := []model.Citation{}
	seen := make(map[string]bool)
	add := func(label, u string) {
		if seen[u] {
			return
		}
		seen[u] = true
		if label == "" {
			label = u
		}
		citations = append(citations, model.Citation{Label: label, URL: u})
	}

	for _, m := range mdLinkRe.FindAllStringSubmatch(text, -1) {
		add(strings.TrimSpace(m[1]), m[2])
	}
	for _, line := range prose {
		rest := mdLinkRe.ReplaceAllString(line, " ")
		prev := 0
		for _, loc := range bareURLRe.FindAllStringIndex(rest, -1) {
			u := trimURL(rest[loc[0]:loc[1]])
			add(citationLabel(rest[prev:loc[0]]), u)
			prev = loc[1]
		}
	}
	return citations
}

// citationLabel derives a label from a "label: URL" prefix, e.g.
// "1. Company team page: " gives "Company team page". Prose without a
// trailing colon yields no label.
func citationLabel(prefix string) string {
	s := strings.TrimSpace(prefix)
	if !strings.HasSuffix(s, ":") {
		return ""
	}
	s = strings.TrimSpace(footnoteRe.ReplaceAllString(s, ""))
	s = listMarkRe.ReplaceAllString(s, "")
	return strings.TrimSpace(strings.TrimRight(stripMarkup(s), ": "))
}

// mergeCitations appends API-level citation URLs not already present.
func mergeCitations(existing []model.Citation, urls []string) []model.Citation {
	seen := make(map[string]bool, len(existing))
	for _, c := range existing {
		seen[c.URL] = true
	}
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		existing = append(existing, model.Citation{Label: u, URL: u})
	}
	return existing
}
