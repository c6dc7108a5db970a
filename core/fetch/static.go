package fetch

import (
	"context"
	"fmt"
	"sync"

	"github.com/gaurav-prasanna/legispipe/core"
)

// Static serves documents from memory, keyed by URL. It backs fixtures
// and offline runs. The mimetype is sniffed from the body.
type Static struct {
	mu    sync.Mutex
	docs  map[string][]byte
	calls map[string]int
}

// NewStatic creates a Static fetcher over docs.
func NewStatic(docs map[string]string) *Static {
	s := &Static{docs: make(map[string][]byte, len(docs)), calls: make(map[string]int)}
	for url, body := range docs {
		s.docs[url] = []byte(body)
	}
	return s
}

// Set adds or replaces a document.
func (s *Static) Set(url string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[url] = body
}

// Fetch returns the document stored for url, or a 404 StatusError.
func (s *Static) Fetch(_ context.Context, url string) (*core.FetchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[url]++
	body, ok := s.docs[url]
	if !ok {
		return nil, fmt.Errorf("fetching %s: %w", url, &StatusError{URL: url, StatusCode: 404})
	}
	return &core.FetchResult{
		URL:        url,
		StatusCode: 200,
		MimeType:   detectMIME("", body),
		Body:       body,
	}, nil
}

// Calls returns how often url was requested.
func (s *Static) Calls(url string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[url]
}
