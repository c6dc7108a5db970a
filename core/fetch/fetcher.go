// Package fetch implements the Fetcher interface.
// It performs HTTP GET requests against legislature sites, retrying
// transient failures with exponential backoff.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sethvargo/go-retry"

	"github.com/gaurav-prasanna/legispipe/core"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultUserAgent  = "LegisPipe/1.0 (https://github.com/gaurav-prasanna/legispipe)"
	defaultMaxRetries = 3
	defaultBackoff    = 500 * time.Millisecond
)

// StatusError is a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// Temporary reports whether retrying may help.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// HTTPFetcher fetches documents via HTTP.
type HTTPFetcher struct {
	client     *http.Client
	userAgent  string
	maxRetries uint64
	backoff    time.Duration
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithClient replaces the HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *HTTPFetcher) { f.client = c }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) { f.userAgent = ua }
}

// WithRetries sets how often a transient failure is retried and the
// initial backoff between attempts. A non-positive backoff keeps the default.
func WithRetries(n uint64, backoff time.Duration) Option {
	return func(f *HTTPFetcher) {
		f.maxRetries = n
		if backoff > 0 {
			f.backoff = backoff
		}
	}
}

// New creates an HTTPFetcher with a sensible timeout.
func New(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:     &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the document at url. Transport errors, 5xx and 429
// responses are retried; other failures are returned at once.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	var result *core.FetchResult
	backoff := retry.WithMaxRetries(f.maxRetries, retry.NewExponential(f.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		res, err := f.fetchOnce(ctx, url)
		if err != nil {
			var statusErr *StatusError
			if errors.As(err, &statusErr) && !statusErr.Temporary() {
				return err
			}
			if ctx.Err() != nil {
				return err
			}
			return retry.RetryableError(err)
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/pdf;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	final := url
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}
	return &core.FetchResult{
		URL:        final,
		StatusCode: resp.StatusCode,
		MimeType:   detectMIME(resp.Header.Get("Content-Type"), body),
		Body:       body,
	}, nil
}

// detectMIME trusts the Content-Type header unless it is missing or
// generic, then sniffs the body.
func detectMIME(header string, body []byte) string {
	if mt, _, err := mime.ParseMediaType(header); err == nil && mt != "application/octet-stream" {
		return mt
	}
	if len(body) == 0 {
		return "application/octet-stream"
	}
	if mt, _, err := mime.ParseMediaType(http.DetectContentType(body)); err == nil && mt != "application/octet-stream" {
		return mt
	}
	mt, _, err := mime.ParseMediaType(mimetype.Detect(body).String())
	if err != nil {
		return "application/octet-stream"
	}
	return mt
}
