// Package id extracts Idaho legislative committees.
//
// Standing committees come from one listing table per chamber. Joint
// committees are linked from a separate index, and each links to a page
// in one of three layouts.
package id

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/extract"
	"github.com/gaurav-prasanna/legispipe/core/parse"
)

const (
	committeeURL = "http://legislature.idaho.gov/%s/committees.cfm"
	jointURL     = "http://legislature.idaho.gov/about/jointcommittees.htm"
)

var chamberPaths = map[core.Chamber]string{
	core.Upper: "senate",
	core.Lower: "house",
}

// listingTable is the content table nested in the page's layout table.
var listingTable = cascadia.MustCompile("body > table > tbody > tr > td:nth-of-type(2) > table")

var (
	upperLower = []extract.ChamberLabel{{Label: "Senate", Chamber: core.Upper}, {Label: "House", Chamber: core.Lower}}
	titles     = []extract.ChamberLabel{{Label: "Sen.", Chamber: core.Upper}, {Label: "Rep.", Chamber: core.Lower}}
)

// Adapter extracts Idaho committees.
type Adapter struct{}

// New creates the Idaho adapter.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) ID() string   { return "id" }
func (a *Adapter) Name() string { return "Idaho" }

// LatestTermOnly reports that only the current term's committees are
// published as HTML.
func (a *Adapter) LatestTermOnly() bool { return true }

// Committees extracts standing committees for upper or lower, and joint
// committees for core.Joint.
func (a *Adapter) Committees(ctx context.Context, env *extract.Env, chamber core.Chamber) ([]core.RawCommittee, error) {
	if chamber == core.Joint {
		return a.jointCommittees(ctx, env)
	}
	path, ok := chamberPaths[chamber]
	if !ok {
		return nil, fmt.Errorf("chamber %q: %w", chamber, core.ErrUnsupported)
	}

	url := fmt.Sprintf(committeeURL, path)
	tree, err := env.HTML(ctx, url)
	if err != nil {
		return nil, err
	}
	rows, err := tableRows(tree, string(chamber)+" committees")
	if err != nil {
		return nil, err
	}

	committees, errs := extract.CommitteeRows(rows, chamber, url, extract.DescribedRow, extract.PlainRow)
	for _, err := range errs {
		env.Warn(fmt.Errorf("%s: %w", url, err))
	}
	return committees, nil
}

// tableRows returns the listing table's rows without the header row.
func tableRows(tree *parse.Tree, entity string) (*goquery.Selection, error) {
	table := tree.FindMatcher(listingTable).First()
	if table.Length() == 0 {
		return nil, &core.MissingSectionError{Entity: entity, Section: "listing table", URL: tree.Base()}
	}
	return table.ChildrenFiltered("tbody").ChildrenFiltered("tr").Slice(1, goquery.ToEnd), nil
}

type jointLink struct {
	name string
	url  string
}

func (a *Adapter) jointCommittees(ctx context.Context, env *extract.Env) ([]core.RawCommittee, error) {
	tree, err := env.HTML(ctx, jointURL)
	if err != nil {
		return nil, err
	}

	var index []jointLink
	tree.Find("td").FilterFunction(func(_ int, td *goquery.Selection) bool {
		return strings.Contains(parse.Text(td.ChildrenFiltered("h1")), "Joint")
	}).ChildrenFiltered("ul").ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		link := li.Children().First()
		href, _ := link.Attr("href")
		index = append(index, jointLink{name: parse.Text(link), url: href})
	})
	if len(index) == 0 {
		return nil, &core.MissingSectionError{Entity: "joint committees", Section: "joint committee index", URL: jointURL}
	}

	var committees []core.RawCommittee
	for _, link := range index {
		members, err := a.jointMembers(ctx, env, link)
		if err != nil {
			env.Warn(err)
			continue
		}
		committees = append(committees, core.RawCommittee{
			Chamber: core.Joint,
			Fields:  []core.Field{{Key: core.FieldCommittee, Value: link.name}},
			Members: members,
			Sources: []string{link.url},
		})
	}
	return committees, nil
}

// jointMembers dispatches a joint committee to the reader for its page
// layout. Economic Outlook has no published membership and is kept as a
// sources-only committee.
func (a *Adapter) jointMembers(ctx context.Context, env *extract.Env, link jointLink) ([]core.RawMember, error) {
	switch {
	case strings.Contains(link.name, "Joint Finance-Appropriations Committee"):
		return a.columnPage(ctx, env, link)
	case strings.Contains(link.name, "Joint Legislative Oversight Committee"):
		return a.headingPage(ctx, env, link)
	case link.name == "Joint Millennium Fund Committee":
		return a.titledPage(ctx, env, link)
	case link.name == "Economic Outlook and Revenue Assessment Committee":
		env.Logger.Info().Str("committee", link.name).Msg("no membership published; keeping sources only")
		return nil, nil
	}
	return nil, &core.UnknownCommitteeError{Name: link.name, URL: link.url}
}

func (a *Adapter) columnPage(ctx context.Context, env *extract.Env, link jointLink) ([]core.RawMember, error) {
	tree, err := env.HTML(ctx, link.url)
	if err != nil {
		return nil, err
	}
	rows, err := tableRows(tree, link.name)
	if err != nil {
		return nil, err
	}
	members, errs := extract.ColumnMembers(rows, "td > strong", core.Upper, core.Lower)
	for _, err := range errs {
		env.Warn(fmt.Errorf("%s: %w", link.name, err))
	}
	return members, nil
}

func (a *Adapter) headingPage(ctx context.Context, env *extract.Env, link jointLink) ([]core.RawMember, error) {
	tree, err := env.HTML(ctx, link.url)
	if err != nil {
		return nil, err
	}
	return extract.HeadingMembers(tree, link.name, "h3", upperLower...)
}

func (a *Adapter) titledPage(ctx context.Context, env *extract.Env, link jointLink) ([]core.RawMember, error) {
	tree, err := env.HTML(ctx, link.url)
	if err != nil {
		return nil, err
	}
	table := tree.Find("table").Eq(2)
	if table.Length() == 0 {
		return nil, &core.MissingSectionError{Entity: link.name, Section: "member table", URL: link.url}
	}
	cells := table.ChildrenFiltered("tbody").ChildrenFiltered("tr").ChildrenFiltered("td")
	return extract.TitledMembers(cells, titles...), nil
}
