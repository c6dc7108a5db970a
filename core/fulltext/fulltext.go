// Package fulltext turns fetched bill documents into searchable text.
// HTML bodies are reduced to their content elements and converted to
// Markdown; PDFs are linearised and stripped of layout artifacts.
package fulltext

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/parse"
	"github.com/gaurav-prasanna/legispipe/core/text"
)

// noiseSelectors are HTML elements removed before conversion.
// These contribute no meaningful content to bill text.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"img", "picture", "figure",
	"iframe", "svg", "canvas",
	"form", "button", "input", "select", "textarea",
}

// Markdown converts every node of s to Markdown, in document order,
// separated by blank lines. Nodes that convert to nothing are skipped.
func Markdown(s *goquery.Selection) (string, error) {
	var parts []string
	for i := range s.Nodes {
		fragment, err := goquery.OuterHtml(s.Eq(i))
		if err != nil {
			return "", fmt.Errorf("serializing content: %w", err)
		}
		md, err := htmltomarkdown.ConvertString(fragment)
		if err != nil {
			return "", fmt.Errorf("converting HTML to markdown: %w", err)
		}
		if md = strings.TrimSpace(text.StripNBSP(md)); md != "" {
			parts = append(parts, md)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

// FromHTML extracts the elements matched by selector from an HTML
// document as Markdown. A document without any match is a
// *core.MissingSectionError.
func FromHTML(data []byte, selector string) (string, error) {
	tree, err := parse.ParseHTML(data)
	if err != nil {
		return "", err
	}
	for _, sel := range noiseSelectors {
		tree.Find(sel).Remove()
	}

	content := tree.Find(selector)
	if content.Length() == 0 {
		return "", &core.MissingSectionError{Entity: "document", Section: selector}
	}
	return Markdown(content)
}

// FromPDF returns a PDF's text as one space-joined string, with page
// numbers removed and, when opts.Marker is set, everything before the
// marker line dropped.
func FromPDF(data []byte, opts text.PaginationOptions) (string, error) {
	lines, err := parse.PDFLines(data)
	if err != nil {
		return "", err
	}
	lines = text.StripPDFPagination(lines, opts)
	return text.CollapseSpace(strings.Join(lines, " ")), nil
}

// FromNumberedPDF returns the text of a PDF whose content lines carry
// line numbers, keeping only those lines.
func FromNumberedPDF(data []byte) (string, error) {
	out, err := parse.ParsePDF(data)
	if err != nil {
		return "", err
	}
	return text.TextAfterLineNumbers(out), nil
}
