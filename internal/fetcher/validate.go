package fetcher

import (
	"net"
	"net/url"
	"strings"

	"github.com/sells-group/contact-finder/internal/failure"
)

// ValidateOptions configures Validate.
type ValidateOptions struct {
	// MaxURLLength rejects longer URLs when positive.
	MaxURLLength int
	// RestrictPrivateIPs refuses localhost and literal loopback, private and
	// link-local addresses.
	RestrictPrivateIPs bool
}

// Validate parses a user-supplied page URL. Every failure is invalid_input.
func Validate(rawURL string, opts ValidateOptions) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, failure.InvalidInput("url is required")
	}
	if opts.MaxURLLength > 0 && len(rawURL) > opts.MaxURLLength {
		return nil, failure.InvalidInput("url exceeds %d characters", opts.MaxURLLength)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, failure.InvalidInput("malformed url %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, failure.InvalidInput("url must start with http:// or https://")
	}
	host := u.Hostname()
	if host == "" {
		return nil, failure.InvalidInput("url %q has no host", rawURL)
	}

	if opts.RestrictPrivateIPs && isPrivateHost(host) {
		return nil, failure.InvalidInput("private or local address %q is not allowed", host)
	}
	return u, nil
}

func isPrivateHost(host string) bool {
	lower := strings.ToLower(host)
	if lower == "localhost" || strings.HasSuffix(lower, ".localhost") {
		return true
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast()
}
