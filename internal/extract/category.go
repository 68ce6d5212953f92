package extract

import (
	"strings"
	"unicode"
)

// categories is ordered so the first matching group wins.
var categories = []struct {
	name     string
	patterns []string
}{
	{"sales", []string{"sales", "business", "commercial", "revenue", "partnerships", "enterprise", "accounts"}},
	{"support", []string{"support", "help", "service", "assistance", "helpdesk", "care", "ticket"}},
	{"info", []string{"info", "contact", "hello", "general", "inquiry", "questions"}},
	{"admin", []string{"admin", "webmaster", "postmaster", "system", "technical", "it", "tech"}},
	{"marketing", []string{"marketing", "promo", "newsletter", "campaign", "social", "media", "pr"}},
	{"hr", []string{"hr", "human", "resources", "recruitment", "careers", "jobs", "talent"}},
}

// Categorize groups an address by its local part, or returns "" when no group
// matches. Whole-token matches win over substring matches, and patterns
// shorter than four letters only match whole tokens so that "priya@" is not
// marketing.
func Categorize(addr string) string {
	local := strings.ToLower(addr)
	if i := strings.IndexByte(local, '@'); i >= 0 {
		local = local[:i]
	}
	tokens := strings.FieldsFunc(local, func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	if name := matchCategory(tokens, func(tok, p string) bool { return tok == p }); name != "" {
		return name
	}
	return matchCategory(tokens, func(tok, p string) bool {
		return len(p) >= 4 && strings.Contains(tok, p)
	})
}

func matchCategory(tokens []string, match func(tok, pattern string) bool) string {
	for _, c := range categories {
		for _, p := range c.patterns {
			for _, tok := range tokens {
				if match(tok, p) {
					return c.name
				}
			}
		}
	}
	return ""
}
