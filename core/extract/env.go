package extract

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/parse"
)

// Env is what an adapter gets to work with during one jurisdiction's
// run: a fetcher, a scoped logger, and a warning collector. Anything an
// adapter skips must pass through Warn so no entity disappears silently.
type Env struct {
	Fetcher core.Fetcher
	Logger  zerolog.Logger

	mu       sync.Mutex
	warnings []error
}

// NewEnv creates an Env.
func NewEnv(fetcher core.Fetcher, logger zerolog.Logger) *Env {
	return &Env{Fetcher: fetcher, Logger: logger}
}

// Warn records a local failure and logs it.
func (e *Env) Warn(err error) {
	if err == nil {
		return
	}
	e.mu.Lock()
	e.warnings = append(e.warnings, err)
	e.mu.Unlock()
	e.Logger.Warn().Err(err).Msg("skipped")
}

// Warnings returns the warnings recorded so far, in order.
func (e *Env) Warnings() []error {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]error, len(e.warnings))
	copy(out, e.warnings)
	return out
}

// Fetch retrieves a document through the fetcher.
func (e *Env) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	e.Logger.Debug().Str("url", url).Msg("fetching")
	res, err := e.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	return res, nil
}

// HTML fetches and parses an HTML page, with links made absolute against
// the final URL of the response.
func (e *Env) HTML(ctx context.Context, url string) (*parse.Tree, error) {
	res, err := e.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	tree, err := parse.ParseHTML(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	base := res.URL
	if base == "" {
		base = url
	}
	return parse.ResolveLinks(tree, base)
}

// PDFText fetches a PDF and returns its linearised text.
func (e *Env) PDFText(ctx context.Context, url string) (string, error) {
	res, err := e.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	out, err := parse.ParsePDF(res.Body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", url, err)
	}
	return out, nil
}
