// Package render turns a jurisdiction's saved entities into a roster
// document: JSON, Markdown, or a PDF typeset from the Markdown.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/output"
)

// Renderer renders one jurisdiction's snapshot.
type Renderer interface {
	Render(snap output.Snapshot) ([]byte, error)
	Extension() string
}

// ForFormat returns the renderer for a format name.
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "markdown", "md":
		return NewMarkdownRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "pdf":
		return NewPDFRenderer(), nil
	}
	return nil, fmt.Errorf("unknown format %q (want markdown, json or pdf)", format)
}

var chamberOrder = []core.Chamber{core.Upper, core.Lower, core.Joint}

func committeesIn(cs []*core.Committee, chamber core.Chamber) []*core.Committee {
	var out []*core.Committee
	for _, c := range cs {
		if c.Chamber == chamber {
			out = append(out, c)
		}
	}
	return out
}

func legislatorsIn(ls []*core.Legislator, chamber core.Chamber) []*core.Legislator {
	var out []*core.Legislator
	for _, l := range ls {
		if l.Chamber == chamber {
			out = append(out, l)
		}
	}
	return out
}
