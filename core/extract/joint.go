package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/parse"
	"github.com/gaurav-prasanna/legispipe/core/text"
)

// ChamberLabel ties a label found in a document ("Senate", "Rep.") to the
// chamber it stands for.
type ChamberLabel struct {
	Label   string
	Chamber core.Chamber
}

var roleRe = regexp.MustCompile(`(?i)^(?:co-?|vice[\s-]*)?chair(?:man|woman|person)?$`)

// SplitNameRole splits "Smith, Chairman" into name and role. Any other
// comma-joined text, such as "Smith, John", is one name.
func SplitNameRole(s string) (string, string) {
	parts := text.SplitNameList(s)
	if len(parts) == 2 && roleRe.MatchString(parts[1]) {
		return parts[0], parts[1]
	}
	return text.CleanName(s), ""
}

// ColumnMembers reads a table with one column per chamber. cells selects
// the name cells within a row; the i-th cell belongs to columns[i].
// Rows with the wrong number of cells are returned as errors and skipped.
func ColumnMembers(rows *goquery.Selection, cells string, columns ...core.Chamber) ([]core.RawMember, []error) {
	var (
		members []core.RawMember
		errs    []error
	)
	rows.Each(func(i int, row *goquery.Selection) {
		found := row.Find(cells)
		if found.Length() != len(columns) {
			errs = append(errs, &core.MalformedRowError{Row: i, Fragments: parse.Fragments(row)})
			return
		}
		found.Each(func(j int, cell *goquery.Selection) {
			name, role := SplitNameRole(parse.Text(cell))
			if name != "" {
				members = append(members, core.RawMember{Name: name, Role: role, Chamber: columns[j]})
			}
		})
	})
	return members, errs
}

// HeadingMembers reads, per section, the first paragraph following the
// heading whose text contains the section label, one name per line.
// A missing heading is a *core.MissingSectionError for entity.
func HeadingMembers(tree *parse.Tree, entity, heading string, sections ...ChamberLabel) ([]core.RawMember, error) {
	var members []core.RawMember
	for _, sec := range sections {
		h := tree.Find(heading).FilterFunction(func(_ int, s *goquery.Selection) bool {
			return strings.Contains(parse.Text(s), sec.Label)
		}).First()
		if h.Length() == 0 {
			return nil, &core.MissingSectionError{Entity: entity, Section: sec.Label + " " + heading, URL: tree.Base()}
		}
		for _, line := range parse.Lines(h.NextAllFiltered("p").First()) {
			name, role := SplitNameRole(line)
			if name != "" {
				members = append(members, core.RawMember{Name: name, Role: role, Chamber: sec.Chamber})
			}
		}
	}
	return members, nil
}

// TitledMembers reads table cells holding one title-prefixed name each
// ("Sen. Smith", "Rep. Doe"). The title is stripped and decides the
// member's chamber; cells without a known title are kept untagged.
func TitledMembers(cells *goquery.Selection, titles ...ChamberLabel) []core.RawMember {
	labels := make([]string, len(titles))
	byLabel := make(map[string]core.Chamber, len(titles))
	for i, t := range titles {
		labels[i] = t.Label
		byLabel[t.Label] = t.Chamber
	}

	var members []core.RawMember
	cells.Each(func(_ int, cell *goquery.Selection) {
		stripped, title := text.StripTitle(parse.Text(cell), labels...)
		name, role := SplitNameRole(stripped)
		if name == "" {
			return
		}
		members = append(members, core.RawMember{Name: name, Role: role, Chamber: byLabel[title]})
	})
	return members
}
