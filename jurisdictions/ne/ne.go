// Package ne lists Nebraska sessions and extracts resolution text from
// the Legislature's PDFs.
package ne

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/extract"
	"github.com/gaurav-prasanna/legispipe/core/fulltext"
	"github.com/gaurav-prasanna/legispipe/core/parse"
	"github.com/gaurav-prasanna/legispipe/core/text"
)

const billsURL = "http://nebraskalegislature.gov/bills/"

// resolutionMarker starts the body of a resolution; the cover matter
// before it is dropped.
const resolutionMarker = "LEGISLATIVE RESOLUTION"

// Adapter covers Nebraska.
type Adapter struct{}

// New creates the Nebraska adapter.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) ID() string   { return "ne" }
func (a *Adapter) Name() string { return "Nebraska" }

// Sessions lists the legislatures offered by the bill search form. The
// last option is not a session.
func (a *Adapter) Sessions(ctx context.Context, env *extract.Env) ([]string, error) {
	tree, err := env.HTML(ctx, billsURL)
	if err != nil {
		return nil, err
	}
	var sessions []string
	tree.Find("select[name=Legislature] option").Each(func(_ int, opt *goquery.Selection) {
		sessions = append(sessions, parse.Text(opt))
	})
	if len(sessions) == 0 {
		return nil, &core.MissingSectionError{Entity: "sessions", Section: "Legislature select", URL: billsURL}
	}
	return sessions[:len(sessions)-1], nil
}

// Text returns a resolution's text from its PDF, without page numbers.
func (a *Adapter) Text(_ core.Document, data []byte) (string, error) {
	return fulltext.FromPDF(data, text.PaginationOptions{Marker: resolutionMarker})
}
