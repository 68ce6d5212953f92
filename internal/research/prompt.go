package research

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sells-group/contact-finder/internal/model"
)

const researchPrompt = `You are a research assistant with web browsing capability. Find publicly listed or known C-level, director and department-head contacts for **%s**%s.
Use LinkedIn, the company website, press releases and news articles.

Return a markdown table with exactly these columns:
| Name | Role | LinkedIn | Email | General Company Email | Source |

Rules:
- Only include people you found in a source, and put that source URL in the Source column.
- Leave a cell empty when the information is not publicly available. Do not guess email addresses.%s
- After the table, list every source URL you used under a "Sources" heading.`

// BuildPrompt renders a query into the research instruction sent to the model.
func BuildPrompt(q model.ContactQuery) string {
	var where strings.Builder
	if w := strings.TrimSpace(q.Website); w != "" {
		fmt.Fprintf(&where, " (website: %s)", w)
	}
	if c := strings.TrimSpace(q.Country); c != "" {
		fmt.Fprintf(&where, " based in %s", c)
	}

	domainHint := ""
	if d := Domain(q.Website); d != "" {
		domainHint = fmt.Sprintf("\n- Company email addresses are expected on the domain %s.", d)
	}

	return fmt.Sprintf(researchPrompt, strings.TrimSpace(q.CompanyName), where.String(), domainHint)
}

// Domain returns the bare host of a website: scheme, "www." and path removed.
func Domain(website string) string {
	website = strings.TrimSpace(website)
	if website == "" {
		return ""
	}
	if !strings.Contains(website, "://") {
		website = "http://" + website
	}
	u, err := url.Parse(website)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
