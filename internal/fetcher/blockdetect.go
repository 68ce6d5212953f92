package fetcher

import (
	"net/http"
	"strings"

	"github.com/sells-group/contact-finder/internal/model"
)

// jsShellMaxBytes is the body size below which a noscript or meta-refresh
// page counts as an empty JavaScript shell.
const jsShellMaxBytes = 2000

// DetectBlock classifies anti-bot responses. On a 2xx the page is still
// scanned, since challenge pages can carry addresses; on a 403 or 503 the
// block kind is reported in the status failure.
func DetectBlock(resp *http.Response, body string) model.BlockType {
	if resp == nil {
		return model.BlockNone
	}
	if deniedByCloudflare(resp) {
		return model.BlockCloudflare
	}

	lower := strings.ToLower(body)
	switch {
	case strings.Contains(lower, "checking your browser"),
		strings.Contains(lower, "cf-browser-verification"),
		strings.Contains(lower, "cloudflare") && strings.Contains(lower, "challenge"):
		return model.BlockCloudflare
	case strings.Contains(lower, "captcha"):
		return model.BlockCaptcha
	case len(body) < jsShellMaxBytes && isJSShell(lower):
		return model.BlockJSShell
	}
	return model.BlockNone
}

// deniedByCloudflare reports a 403/503 served by Cloudflare's edge.
func deniedByCloudflare(resp *http.Response) bool {
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusServiceUnavailable {
		return false
	}
	h := resp.Header
	return h.Get("cf-ray") != "" || h.Get("cf-cache-status") != "" || strings.EqualFold(h.Get("server"), "cloudflare")
}

func isJSShell(lower string) bool {
	return (strings.Contains(lower, "<noscript") && strings.Contains(lower, "javascript")) ||
		strings.Contains(lower, `meta http-equiv="refresh"`)
}
