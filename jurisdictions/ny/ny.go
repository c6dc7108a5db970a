// Package ny extracts New York legislators: senators from the Senate
// directory and their contact pages, assembly members from the Assembly
// email directory and their member pages.
package ny

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/extract"
	"github.com/gaurav-prasanna/legispipe/core/links"
	"github.com/gaurav-prasanna/legispipe/core/parse"
	"github.com/gaurav-prasanna/legispipe/core/text"
)

const (
	senateURL   = "http://www.nysenate.gov/senators"
	assemblyURL = "http://assembly.state.ny.us/mem/?sh=email"

	albanyLocality = "Albany, NY 12247"
)

var (
	senatorLinks = cascadia.MustCompile(`a[href*="/senator/"]`)
	anchors      = cascadia.MustCompile(`a[href]`)

	districtRe = regexp.MustCompile(`District (\d+)`)
	partyRe    = regexp.MustCompile(`\(([A-Za-z,\s]+)\)`)
)

// Adapter extracts New York legislators.
type Adapter struct{}

// New creates the New York adapter.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) ID() string   { return "ny" }
func (a *Adapter) Name() string { return "New York" }

// Legislators extracts the members of one chamber.
func (a *Adapter) Legislators(ctx context.Context, env *extract.Env, term string, chamber core.Chamber) ([]core.RawLegislator, error) {
	switch chamber {
	case core.Upper:
		return a.senators(ctx, env, term)
	case core.Lower:
		return a.assemblyMembers(ctx, env, term)
	}
	return nil, fmt.Errorf("chamber %q: %w", chamber, core.ErrUnsupported)
}

func (a *Adapter) senators(ctx context.Context, env *extract.Env, term string) ([]core.RawLegislator, error) {
	tree, err := env.HTML(ctx, senateURL)
	if err != nil {
		return nil, err
	}

	var out []core.RawLegislator
	found := tree.FindMatcher(senatorLinks)
	if found.Length() == 0 {
		return nil, &core.MissingSectionError{Entity: "senators", Section: "senator links", URL: senateURL}
	}
	for i := range found.Nodes {
		link := found.Eq(i)
		name := parse.Text(link)
		if name == "" || name == "Contact" || name == "RSS" {
			continue
		}

		// The link sits in the card's name block; district and photo are
		// sibling blocks of that card.
		card := link.Parent().Parent().Parent()
		blocks := card.ChildrenFiltered("div")
		m := districtRe.FindStringSubmatch(parse.Text(blocks.Eq(2).ChildrenFiltered("span").First()))
		if m == nil {
			env.Warn(&core.MissingSectionError{Entity: "senator " + name, Section: "district", URL: senateURL})
			continue
		}

		leg := core.RawLegislator{
			Term:     term,
			Chamber:  core.Upper,
			District: m[1],
			Name:     name,
			Sources:  []string{senateURL},
		}
		leg.PhotoURL, _ = blocks.Eq(0).Find("span > a > img").Attr("src")
		leg.URL, _ = link.Attr("href")

		contact, ok := link.Parent().ChildrenFiltered("span.contact").ChildrenFiltered("a").Attr("href")
		if ok {
			leg.URL = links.TrimSuffixPath(contact, "/contact")
			a.senatorContact(ctx, env, &leg, contact)
		}
		out = append(out, leg)
	}
	return out, nil
}

// senatorContact fills email, party and offices from a contact page.
// Every part is optional; a page that fails to load only loses them.
func (a *Adapter) senatorContact(ctx context.Context, env *extract.Env, leg *core.RawLegislator, url string) {
	tree, err := env.HTML(ctx, url)
	if err != nil {
		env.Warn(fmt.Errorf("senator %s: contact page: %w", leg.Name, err))
		return
	}
	leg.Sources = append(leg.Sources, url)

	leg.Email = text.DeobfuscateEmail(tree.Find("span.spamspan").First().Text())

	if m := partyRe.FindStringSubmatch(parse.Text(tree.Find("div.district"))); m != nil {
		leg.PartyCodes = strings.Split(m[1], ",")
	}

	if block := officeBlock(tree, "Albany Office"); block != nil {
		lines := parse.Lines(block.ChildrenFiltered("div").First())
		if len(lines) > 0 {
			leg.Offices = append(leg.Offices, core.RawOffice{
				Name:         "Capitol Office",
				Type:         core.CapitolOffice,
				AddressLines: append(lines, albanyLocality),
				Phone:        officePhone(block),
			})
		}
	}

	if block := officeBlock(tree, "District Office"); block != nil {
		lines := parse.Lines(block.ChildrenFiltered("div").First())
		locality := text.CollapseSpace(fmt.Sprintf("%s, %s %s",
			parse.Text(block.ChildrenFiltered("span.locality")),
			parse.Text(block.ChildrenFiltered("span.region")),
			parse.Text(block.ChildrenFiltered("span.postal-code"))))
		if locality != "," {
			lines = append(lines, locality)
		}
		leg.Offices = append(leg.Offices, core.RawOffice{
			Name:         "District Office",
			Type:         core.DistrictOffice,
			AddressLines: lines,
			Phone:        officePhone(block),
		})
	}
}

// officeBlock returns the parent of the span labelled label, or nil.
func officeBlock(tree *parse.Tree, label string) *goquery.Selection {
	span := tree.Find("span").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return parse.Text(s) == label
	}).First()
	if span.Length() == 0 {
		return nil
	}
	return span.Parent()
}

func officePhone(block *goquery.Selection) string {
	return parse.Text(block.ChildrenFiltered("div.tel").ChildrenFiltered("span.value").First())
}

// pendingMember is an assembly directory entry waiting for the mailto
// link that follows it.
type pendingMember struct {
	link *goquery.Selection
	name string
	skip bool
}

func (a *Adapter) assemblyMembers(ctx context.Context, env *extract.Env, term string) ([]core.RawLegislator, error) {
	tree, err := env.HTML(ctx, assemblyURL)
	if err != nil {
		return nil, err
	}

	var (
		out     []core.RawLegislator
		pending *pendingMember
	)
	flush := func(email string) {
		if pending == nil || pending.skip {
			pending = nil
			return
		}
		if leg, ok := a.assemblyMember(ctx, env, term, pending, email); ok {
			out = append(out, leg)
		}
		pending = nil
	}

	// Directory entries are a member link followed by that member's
	// mailto link, in document order.
	tree.FindMatcher(anchors).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		switch {
		case strings.Contains(href, "/mem/"):
			flush("")
			name := parse.Text(s)
			pending = &pendingMember{
				link: s,
				name: name,
				skip: name == "" || name == "Assembly Members" || strings.Contains(name, "Assembly District"),
			}
		case strings.HasPrefix(strings.ToLower(href), "mailto:"):
			flush(parse.Text(s))
		}
	})
	flush("")

	if len(out) == 0 {
		return nil, &core.MissingSectionError{Entity: "assembly members", Section: "member directory", URL: assemblyURL}
	}
	return out, nil
}

func (a *Adapter) assemblyMember(ctx context.Context, env *extract.Env, term string, p *pendingMember, email string) (core.RawLegislator, bool) {
	district := parse.Text(p.link.Parent().NextAllFiltered("div.email2").First())
	if district == "" {
		env.Warn(&core.MissingSectionError{Entity: "assembly member " + p.name, Section: "district", URL: assemblyURL})
		return core.RawLegislator{}, false
	}

	url, _ := p.link.Attr("href")
	leg := core.RawLegislator{
		Term:     term,
		Chamber:  core.Lower,
		District: text.StripOrdinalSuffix(district),
		Name:     p.name,
		Email:    email,
		URL:      url,
		Sources:  []string{assemblyURL},
	}
	a.assemblyOffices(ctx, env, &leg)
	return leg, true
}

// assemblyOffices reads the office columns (addrcol1, addrcol2, ...) of a
// member page. The last address line of each block holds the phone.
func (a *Adapter) assemblyOffices(ctx context.Context, env *extract.Env, leg *core.RawLegislator) {
	tree, err := env.HTML(ctx, leg.URL)
	if err != nil {
		env.Warn(fmt.Errorf("assembly member %s: member page: %w", leg.Name, err))
		return
	}
	leg.Sources = append(leg.Sources, leg.URL)

	contact := tree.Find("div#addrinfo").First()
	if contact.Length() == 0 {
		env.Logger.Debug().Str("legislator", leg.Name).Msg("no office section")
		return
	}
	for col := 1; ; col++ {
		blocks := contact.ChildrenFiltered(fmt.Sprintf("div.addrcol%d", col))
		if blocks.Length() == 0 {
			return
		}
		blocks.Each(func(_ int, block *goquery.Selection) {
			leg.Offices = append(leg.Offices, core.RawOffice{
				Name:         parse.Text(block.ChildrenFiltered("div.officehdg")),
				AddressLines: parse.Lines(block.ChildrenFiltered("div.officeaddr")),
			})
		})
	}
}
