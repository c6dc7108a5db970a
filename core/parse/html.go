// Package parse converts raw document bytes into something extractors can
// walk: HTML into a goquery-backed Tree, PDF into line-preserving text.
// No fetching and no retries happen here.
package parse

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/text"
	"golang.org/x/net/html"
)

// Tree is a parsed HTML document.
type Tree struct {
	doc *goquery.Document
}

// ParseHTML parses raw HTML bytes. Empty input and binary input (a PDF
// handed to the HTML path, NUL bytes) are reported as *core.ParseError.
func ParseHTML(data []byte) (*Tree, error) {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return nil, &core.ParseError{Kind: "html", Err: errors.New("empty document")}
	case bytes.HasPrefix(trimmed, []byte("%PDF-")), bytes.IndexByte(trimmed, 0) >= 0:
		return nil, &core.ParseError{Kind: "html", Err: errors.New("binary content")}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, &core.ParseError{Kind: "html", Err: err}
	}
	return &Tree{doc: doc}, nil
}

// Root returns the whole document as a selection.
func (t *Tree) Root() *goquery.Selection {
	return t.doc.Selection
}

// Find runs a CSS selector against the whole document.
func (t *Tree) Find(selector string) *goquery.Selection {
	return t.doc.Find(selector)
}

// FindMatcher runs a pre-compiled matcher (e.g. a cascadia.Selector).
func (t *Tree) FindMatcher(m goquery.Matcher) *goquery.Selection {
	return t.doc.FindMatcher(m)
}

// Base returns the URL links were resolved against, or "".
func (t *Tree) Base() string {
	if t.doc.Url == nil {
		return ""
	}
	return t.doc.Url.String()
}

// ResolveLinks rewrites relative href and src attributes to absolute URLs.
// mailto:, tel:, javascript: and fragment-only references are left alone.
func ResolveLinks(t *Tree, base string) (*Tree, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return t, fmt.Errorf("parsing base URL: %w", err)
	}
	t.doc.Url = baseURL

	t.doc.Find("[href], [src]").Each(func(_ int, s *goquery.Selection) {
		for _, node := range s.Nodes {
			for i, attr := range node.Attr {
				if attr.Key != "href" && attr.Key != "src" {
					continue
				}
				if resolved, ok := resolveURL(attr.Val, baseURL); ok {
					node.Attr[i].Val = resolved
				}
			}
		}
	})
	return t, nil
}

// resolveURL resolves a potentially relative URL against a base.
func resolveURL(ref string, base *url.URL) (string, bool) {
	ref = strings.TrimSpace(ref)
	lower := strings.ToLower(ref)
	if ref == "" || strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "tel:") || strings.HasPrefix(ref, "#") {
		return "", false
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(parsed).String(), true
}

// Text returns the selection's text with no-break spaces replaced and
// whitespace collapsed.
func Text(s *goquery.Selection) string {
	return text.CollapseSpace(text.StripNBSP(s.Text()))
}

// Lines returns the selection's text split into lines. <br> and block
// element boundaries break lines, as do literal newlines in text nodes.
// Lines are trimmed and blank lines dropped.
func Lines(s *goquery.Selection) []string {
	var b strings.Builder
	for _, node := range s.Nodes {
		writeLines(&b, node)
		b.WriteByte('\n')
	}

	raw := strings.ReplaceAll(b.String(), "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if line = text.CollapseSpace(text.StripNBSP(line)); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func writeLines(b *strings.Builder, node *html.Node) {
	switch node.Type {
	case html.TextNode:
		b.WriteString(node.Data)
		return
	case html.ElementNode:
		switch name := dom.NodeName(node); {
		case name == "br":
			b.WriteByte('\n')
			return
		case name == "script" || name == "style":
			return
		case dom.NameIsBlockNode(name), name == "tr", name == "td", name == "th":
			b.WriteByte('\n')
			defer b.WriteByte('\n')
		}
	}
	for _, child := range dom.AllChildNodes(node) {
		writeLines(b, child)
	}
}
