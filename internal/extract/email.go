// Package extract finds email addresses in page text.
//
// Matching is purely syntactic: no DNS, MX or SMTP checks are made, and
// obfuscated forms such as "jane at example dot com" are not recognized.
package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/sells-group/contact-finder/internal/model"
)

// emailRe matches local-part@domain with at least one dot in the domain and a
// TLD of two or more letters.
var emailRe = regexp.MustCompile(`(?i)\b[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}\b`)

// Emails returns the distinct addresses in text in first-seen order.
// Duplicates are collapsed case-insensitively; the first casing seen is kept.
func Emails(text string) []string {
	var d dedup
	for _, m := range emailRe.FindAllString(text, -1) {
		d.add(m)
	}
	return d.list()
}

// FromHTML extracts addresses from a page body: everything matching in the
// raw markup first, then percent-decoded mailto targets from anchor hrefs.
func FromHTML(body, sourceURL string) []model.EmailRecord {
	var d dedup
	for _, m := range emailRe.FindAllString(body, -1) {
		d.add(m)
	}
	for _, target := range mailtoTargets(body) {
		for _, m := range emailRe.FindAllString(target, -1) {
			d.add(m)
		}
	}

	addrs := d.list()
	records := make([]model.EmailRecord, 0, len(addrs))
	for _, a := range addrs {
		records = append(records, model.EmailRecord{Address: a, SourceURL: sourceURL})
	}
	return records
}

// mailtoTargets returns the decoded recipient part of every mailto: link.
func mailtoTargets(body string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		zap.L().Debug("extract: parse html failed", zap.Error(err))
		return nil
	}

	var targets []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if len(href) < len("mailto:") || !strings.EqualFold(href[:len("mailto:")], "mailto:") {
			return
		}
		target := href[len("mailto:"):]
		if i := strings.IndexByte(target, '?'); i >= 0 {
			target = target[:i]
		}
		if decoded, err := url.PathUnescape(target); err == nil {
			target = decoded
		}
		// Multiple recipients are comma separated.
		targets = append(targets, strings.ReplaceAll(target, ",", " "))
	})
	return targets
}

type dedup struct {
	seen  map[string]struct{}
	addrs []string
}

func (d *dedup) add(addr string) {
	if d.seen == nil {
		d.seen = make(map[string]struct{})
	}
	key := strings.ToLower(addr)
	if _, ok := d.seen[key]; ok {
		return
	}
	d.seen[key] = struct{}{}
	d.addrs = append(d.addrs, addr)
}

func (d *dedup) list() []string {
	if d.addrs == nil {
		return []string{}
	}
	return d.addrs
}
