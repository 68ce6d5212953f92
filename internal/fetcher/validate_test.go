package fetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contact-finder/internal/failure"
)

func TestValidate(t *testing.T) {
	strict := ValidateOptions{MaxURLLength: 64, RestrictPrivateIPs: true}

	tests := []struct {
		name    string
		url     string
		opts    ValidateOptions
		wantErr string
	}{
		{name: "https", url: "https://shs-co.de/kontakt", opts: strict},
		{name: "trimmed", url: "  http://acme.com  ", opts: strict},
		{name: "empty", url: " ", opts: strict, wantErr: "url is required"},
		{name: "no_scheme", url: "acme.com", opts: strict, wantErr: "http:// or https://"},
		{name: "ftp", url: "ftp://acme.com", opts: strict, wantErr: "http:// or https://"},
		{name: "no_host", url: "https:///path", opts: strict, wantErr: "has no host"},
		{name: "too_long", url: "https://acme.com/" + strings.Repeat("a", 64), opts: strict, wantErr: "exceeds 64 characters"},
		{name: "localhost", url: "http://localhost:8080", opts: strict, wantErr: "not allowed"},
		{name: "loopback", url: "http://127.0.0.1/", opts: strict, wantErr: "not allowed"},
		{name: "private", url: "http://10.1.2.3/", opts: strict, wantErr: "not allowed"},
		{name: "link_local", url: "http://169.254.169.254/latest", opts: strict, wantErr: "not allowed"},
		{name: "ipv6_loopback", url: "http://[::1]/", opts: strict, wantErr: "not allowed"},
		{name: "public_ip", url: "http://93.184.216.34/", opts: strict},
		{name: "loopback_allowed", url: "http://127.0.0.1:9000/", opts: ValidateOptions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Validate(tt.url, tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, failure.KindInvalidInput, failure.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, u.Host)
		})
	}
}
