package extract

import (
	"path"
	"strings"
)

// placeholderPatterns are substrings of addresses that are never real contacts.
var placeholderPatterns = []string{
	"noreply", "no-reply", "donotreply", "test@",
	"admin@example", "user@example", "contact@example",
	"webmaster@example", "info@example", "@example.com",
	"sample@", "demo@", "placeholder@",
}

// assetExtensions catch retina image names such as logo@2x.png that match the
// address pattern.
var assetExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".css": true, ".js": true,
}

// FilterOptions configures Filter.
type FilterOptions struct {
	ExcludedDomains []string
}

// Filter drops placeholder, excluded-domain and asset-name addresses,
// preserving order.
func Filter(addrs []string, opts FilterOptions) []string {
	excluded := make(map[string]bool, len(opts.ExcludedDomains))
	for _, d := range opts.ExcludedDomains {
		excluded[strings.ToLower(strings.TrimSpace(d))] = true
	}

	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		lower := strings.ToLower(a)
		if excluded[domainOf(lower)] || isPlaceholder(lower) || assetExtensions[path.Ext(lower)] {
			continue
		}
		out = append(out, a)
	}
	return out
}

func isPlaceholder(lower string) bool {
	for _, p := range placeholderPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func domainOf(addr string) string {
	if i := strings.LastIndexByte(addr, '@'); i >= 0 {
		return addr[i+1:]
	}
	return ""
}
