package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/output"
)

// MarkdownRenderer writes a roster as Markdown: committees, then
// legislators, each grouped by chamber.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the roster Markdown.
func (r *MarkdownRenderer) Render(snap output.Snapshot) ([]byte, error) {
	return []byte(rosterMarkdown(snap)), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

func rosterMarkdown(snap output.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s roster\n", strings.ToUpper(snap.Jurisdiction))

	if len(snap.Committees) > 0 {
		b.WriteString("\n## Committees\n")
		for _, chamber := range chamberOrder {
			cs := committeesIn(snap.Committees, chamber)
			if len(cs) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n### %s\n", chamberTitle(chamber))
			for _, c := range cs {
				writeCommittee(&b, c)
			}
		}
	}

	if len(snap.Legislators) > 0 {
		b.WriteString("\n## Legislators\n")
		for _, chamber := range chamberOrder {
			ls := legislatorsIn(snap.Legislators, chamber)
			if len(ls) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n### %s\n\n", chamberTitle(chamber))
			for _, l := range ls {
				writeLegislator(&b, l)
			}
		}
	}
	return b.String()
}

func writeCommittee(b *strings.Builder, c *core.Committee) {
	fmt.Fprintf(b, "\n#### %s\n\n", c.Name)
	for _, d := range []struct{ label, value string }{
		{"Description", c.Description},
		{"Secretary", c.Secretary},
		{"Office hours", c.OfficeHours},
		{"Office phone", c.OfficePhone},
	} {
		if d.value != "" {
			fmt.Fprintf(b, "%s: %s\n\n", d.label, d.value)
		}
	}
	for _, m := range c.Members {
		var notes []string
		if m.Role != "" {
			notes = append(notes, m.Role)
		}
		if m.Chamber != "" {
			notes = append(notes, string(m.Chamber))
		}
		if len(notes) > 0 {
			fmt.Fprintf(b, "- %s (%s)\n", m.Name, strings.Join(notes, ", "))
		} else {
			fmt.Fprintf(b, "- %s\n", m.Name)
		}
	}
	if len(c.Members) == 0 {
		b.WriteString("*No members listed.*\n")
	}
	writeSources(b, c.Sources)
}

func writeLegislator(b *strings.Builder, l *core.Legislator) {
	fmt.Fprintf(b, "- **%s**, District %s, %s", l.Name, l.District, l.Party)
	if len(l.OtherParties) > 0 {
		fmt.Fprintf(b, " (also %s)", strings.Join(l.OtherParties, ", "))
	}
	if l.Email != "" {
		fmt.Fprintf(b, ", %s", l.Email)
	}
	b.WriteString("\n")
	for _, o := range l.Offices {
		line := fmt.Sprintf("%s: %s", o.Name, strings.ReplaceAll(o.Address, "\n", ", "))
		if o.Phone != "" {
			line += ", " + o.Phone
		}
		fmt.Fprintf(b, "  - %s\n", line)
	}
}

func writeSources(b *strings.Builder, sources []string) {
	if len(sources) == 0 {
		return
	}
	fmt.Fprintf(b, "\nSources: %s\n", strings.Join(sources, ", "))
}

func chamberTitle(c core.Chamber) string {
	switch c {
	case core.Upper:
		return "Upper chamber"
	case core.Lower:
		return "Lower chamber"
	case core.Joint:
		return "Joint"
	}
	return string(c)
}
