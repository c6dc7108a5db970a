// Package core defines the data model, error taxonomy and collaborator
// interfaces shared by every stage of the extraction pipeline:
// fetch → parse → extract → build → sink.
package core

import "context"

// FetchResult holds the raw bytes and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	MimeType   string
	Body       []byte
}

// Fetcher retrieves raw document bytes for a URL. Retries, caching and
// timeouts are the fetcher's business, never the extractor's.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Sink receives finished entities, exactly once per entity per run.
// Implementations must serialise writes.
type Sink interface {
	SaveCommittee(ctx context.Context, c *Committee) error
	SaveLegislator(ctx context.Context, l *Legislator) error
}

// TermValidator is consulted once per run, before extraction begins.
// A failure is reported as a *ConfigError.
type TermValidator interface {
	ValidateTerm(jurisdiction, term string, latestOnly bool) error
}

// Document describes a fetched source document handed to full-text
// extraction. The mimetype decides between the HTML and PDF paths.
type Document struct {
	URL      string
	MimeType string
}
