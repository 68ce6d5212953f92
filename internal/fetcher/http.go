package fetcher

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/contact-finder/internal/failure"
	"github.com/sells-group/contact-finder/internal/model"
	"github.com/sells-group/contact-finder/internal/resilience"
)

const (
	// PageTimeout bounds every single GET attempt.
	PageTimeout = 10 * time.Second

	defaultMaxAttempts  = 3
	maxRedirects        = 10
	defaultMaxBodyBytes = 2 << 20
	defaultUserAgent    = "contact-finder/1.0"
)

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent string
	// Timeout is the per-attempt limit. Default: PageTimeout.
	Timeout time.Duration
	// MaxRetries is the total number of attempts, first try included, as
	// configured by MAX_RETRIES. Default: 3.
	MaxRetries int
	// Delay is waited before the first request and between attempts.
	Delay        time.Duration
	MaxBodyBytes int64
	Validate     ValidateOptions
}

// HTTPFetcher implements Fetcher using net/http with a courtesy delay and
// bounded retries.
type HTTPFetcher struct {
	client *http.Client
	opts   HTTPOptions
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = PageTimeout
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxAttempts
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: opts.Timeout,
				}).DialContext,
				TLSHandshakeTimeout: opts.Timeout,
				IdleConnTimeout:     90 * time.Second,
			},
			CheckRedirect: checkRedirect(opts.Validate),
		},
		opts: opts,
	}
}

// Fetch validates the URL, waits the courtesy delay, then GETs the page,
// retrying timeouts, connection errors and non-2xx responses.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*model.Page, error) {
	u, err := Validate(rawURL, f.opts.Validate)
	if err != nil {
		return nil, err
	}
	target := u.String()

	if err := resilience.Sleep(ctx, f.opts.Delay); err != nil {
		return nil, failure.New(failure.KindNetwork, eris.Wrap(err, "fetch: cancelled before request"))
	}

	retry := resilience.RetryConfig{
		MaxAttempts: f.opts.MaxRetries,
		Delay:       f.opts.Delay,
		ShouldRetry: failure.Retryable,
		OnRetry: func(attempt int, err error) {
			zap.L().Warn("http request failed, retrying",
				zap.String("url", target),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", f.opts.MaxRetries),
				zap.Error(err),
			)
		},
	}

	page, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (*model.Page, error) {
		return f.get(ctx, target)
	})
	if err != nil {
		return nil, err
	}
	zap.L().Debug("page fetched",
		zap.String("url", target),
		zap.Int("status", page.StatusCode),
		zap.Int("bytes", len(page.Body)),
	)
	return page, nil
}

func (f *HTTPFetcher) get(ctx context.Context, target string) (*model.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, failure.New(failure.KindInvalidInput, eris.Wrap(err, "fetch: create request"))
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		// A refused redirect target is an input problem, not a transient one.
		var fe *failure.Error
		if errors.As(err, &fe) && fe.Kind == failure.KindInvalidInput {
			return nil, fe
		}
		if isTimeout(err) {
			return nil, failure.New(failure.KindNetwork, eris.Wrapf(err, "fetch: %s timed out after %s", target, f.opts.Timeout))
		}
		return nil, failure.New(failure.KindNetwork, eris.Wrapf(err, "fetch: %s", target))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBodyBytes))
	if err != nil {
		return nil, failure.New(failure.KindNetwork, eris.Wrapf(err, "fetch: read body of %s", target))
	}

	contentType := resp.Header.Get("Content-Type")
	body := decodeBody(raw, contentType)
	block := DetectBlock(resp, body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if block != model.BlockNone {
			return nil, failure.Status(resp.StatusCode,
				eris.Errorf("fetch: %s returned status %d (blocked by %s)", target, resp.StatusCode, block))
		}
		return nil, failure.Status(resp.StatusCode, eris.Errorf("fetch: %s returned status %d", target, resp.StatusCode))
	}

	return &model.Page{
		URL:         target,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Title:       extractTitle(body),
		Body:        body,
		Block:       block,
	}, nil
}

// checkRedirect applies the same URL rules to every redirect hop as to the
// requested URL, so a public page cannot redirect into a private network.
func checkRedirect(opts ValidateOptions) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return eris.Errorf("fetch: stopped after %d redirects", maxRedirects)
		}
		if _, err := Validate(req.URL.String(), opts); err != nil {
			return failure.InvalidInput("redirect to %s refused: %v", req.URL.Redacted(), err)
		}
		return nil
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
