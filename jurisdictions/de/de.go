// Package de lists Delaware General Assembly sessions and extracts bill
// text from the HTML bill pages.
package de

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/extract"
	"github.com/gaurav-prasanna/legispipe/core/fulltext"
	"github.com/gaurav-prasanna/legispipe/core/parse"
)

const homeURL = "http://legis.delaware.gov/"

// Adapter covers Delaware.
type Adapter struct{}

// New creates the Delaware adapter.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) ID() string   { return "de" }
func (a *Adapter) Name() string { return "Delaware" }

// Sessions lists the sessions in the home page's session picker, minus
// its "Session" placeholder.
func (a *Adapter) Sessions(ctx context.Context, env *extract.Env) ([]string, error) {
	tree, err := env.HTML(ctx, homeURL)
	if err != nil {
		return nil, err
	}
	var sessions []string
	tree.Find("select[name=gSession] option").Each(func(_ int, opt *goquery.Selection) {
		if s := parse.Text(opt); s != "" && s != "Session" {
			sessions = append(sessions, s)
		}
	})
	if len(sessions) == 0 {
		return nil, &core.MissingSectionError{Entity: "sessions", Section: "gSession select", URL: homeURL}
	}
	return sessions, nil
}

// Text returns the Word-exported paragraphs of an HTML bill as Markdown.
// Other document kinds are not supported.
func (a *Adapter) Text(doc core.Document, data []byte) (string, error) {
	if doc.MimeType != "text/html" {
		return "", fmt.Errorf("%s (%s): %w", doc.URL, doc.MimeType, core.ErrUnsupported)
	}
	return fulltext.FromHTML(data, "p.MsoNormal")
}
