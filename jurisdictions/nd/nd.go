// Package nd lists North Dakota assemblies and extracts bill text from
// line-numbered PDFs.
package nd

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/extract"
	"github.com/gaurav-prasanna/legispipe/core/fulltext"
	"github.com/gaurav-prasanna/legispipe/core/parse"
)

const assemblyURL = "http://www.legis.nd.gov/assembly/"

// Adapter covers North Dakota.
type Adapter struct{}

// New creates the North Dakota adapter.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) ID() string   { return "nd" }
func (a *Adapter) Name() string { return "North Dakota" }

// Sessions lists the assemblies linked from the assembly index.
func (a *Adapter) Sessions(ctx context.Context, env *extract.Env) ([]string, error) {
	tree, err := env.HTML(ctx, assemblyURL)
	if err != nil {
		return nil, err
	}
	var sessions []string
	tree.Find("div.view-content a").Each(func(_ int, link *goquery.Selection) {
		if s := parse.Text(link); s != "" {
			sessions = append(sessions, s)
		}
	})
	if len(sessions) == 0 {
		return nil, &core.MissingSectionError{Entity: "sessions", Section: "view-content", URL: assemblyURL}
	}
	return sessions, nil
}

// Text returns the numbered lines of a bill PDF.
func (a *Adapter) Text(_ core.Document, data []byte) (string, error) {
	return fulltext.FromNumberedPDF(data)
}
