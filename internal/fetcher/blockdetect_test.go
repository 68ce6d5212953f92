package fetcher

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/contact-finder/internal/model"
)

func TestDetectBlock(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header http.Header
		body   string
		want   model.BlockType
	}{
		{"clean", 200, http.Header{}, "<html><body>" + strings.Repeat("content ", 300) + "</body></html>", model.BlockNone},
		{"cloudflare_header", 403, http.Header{"Cf-Ray": []string{"abc"}}, "denied", model.BlockCloudflare},
		{"cloudflare_server", 503, http.Header{"Server": []string{"cloudflare"}}, "", model.BlockCloudflare},
		{"cloudflare_body", 200, http.Header{}, "Checking your browser before accessing", model.BlockCloudflare},
		{"captcha", 200, http.Header{}, "please solve the hCaptcha", model.BlockCaptcha},
		{"js_shell", 200, http.Header{}, "<noscript>Enable JavaScript</noscript>", model.BlockJSShell},
		{"meta_refresh", 200, http.Header{}, `<meta http-equiv="refresh" content="0;url=/x">`, model.BlockJSShell},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{StatusCode: tt.status, Header: tt.header}
			assert.Equal(t, tt.want, DetectBlock(resp, tt.body))
		})
	}
	assert.Equal(t, model.BlockNone, DetectBlock(nil, "captcha"))
}
