package fetcher

import (
	"bytes"
	"html"
	"mime"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
)

var (
	metaCharsetRe = regexp.MustCompile(`(?i)<meta[^>]+charset\s*=\s*["']?([a-zA-Z0-9_.:-]+)`)
	titleRe       = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
)

// decodeBody converts raw bytes to UTF-8 using the Content-Type charset, or
// a <meta charset> declaration when the header has none.
func decodeBody(raw []byte, contentType string) string {
	charset := ""
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		charset = params["charset"]
	}
	if charset == "" {
		head := raw
		if len(head) > 1024 {
			head = head[:1024]
		}
		if m := metaCharsetRe.FindSubmatch(head); len(m) > 1 {
			charset = string(m[1])
		}
	}
	if charset == "" || strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "utf8") {
		return string(raw)
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		zap.L().Debug("fetch: unsupported charset, using raw bytes", zap.String("charset", charset))
		return string(raw)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil || !utf8.Valid(decoded) {
		return string(raw)
	}
	return string(bytes.TrimPrefix(decoded, []byte("\xef\xbb\xbf")))
}

// extractTitle pulls the <title> from HTML.
func extractTitle(body string) string {
	m := titleRe.FindStringSubmatch(body)
	if len(m) > 1 {
		return strings.Join(strings.Fields(html.UnescapeString(m[1])), " ")
	}
	return ""
}
