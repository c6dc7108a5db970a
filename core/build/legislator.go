package build

import (
	"fmt"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/links"
	"github.com/gaurav-prasanna/legispipe/core/text"
)

// LegislatorBuilder assembles one Legislator. The party defaults to
// core.UnknownParty until Party is called.
type LegislatorBuilder struct {
	l        core.Legislator
	sources  *links.Set
	warnings []error
}

// NewLegislator starts a legislator record.
func NewLegislator(term string, chamber core.Chamber, district, name string) *LegislatorBuilder {
	return &LegislatorBuilder{
		l: core.Legislator{
			Term:     term,
			Chamber:  chamber,
			District: text.StripOrdinalSuffix(text.StripNBSP(district)),
			Name:     text.CleanName(name),
			Party:    core.UnknownParty,
		},
		sources: links.NewSet(),
	}
}

// Party resolves party-code tokens and assigns primary and other parties.
func (b *LegislatorBuilder) Party(codes ...string) *LegislatorBuilder {
	if len(codes) == 0 {
		return b
	}
	res := ResolveParty(codes)
	b.l.Party = res.Primary
	b.l.OtherParties = res.Others
	return b
}

// AddOffice assembles and appends an office. An office without an address
// is dropped; the failure is kept as a warning, not returned.
func (b *LegislatorBuilder) AddOffice(raw core.RawOffice) *LegislatorBuilder {
	office, err := AssembleOffice(raw)
	if err != nil {
		b.warnings = append(b.warnings, fmt.Errorf("legislator %s: office %q: %w", describe(b.l.Name), raw.Name, err))
		return b
	}
	b.l.Offices = append(b.l.Offices, office)
	return b
}

// Email sets the contact email; blank values leave it unset.
func (b *LegislatorBuilder) Email(email string) *LegislatorBuilder {
	b.l.Email = text.CollapseSpace(email)
	return b
}

// URL sets the profile URL.
func (b *LegislatorBuilder) URL(url string) *LegislatorBuilder {
	b.l.URL = links.NormalizeURL(url)
	return b
}

// PhotoURL sets the portrait URL.
func (b *LegislatorBuilder) PhotoURL(url string) *LegislatorBuilder {
	b.l.PhotoURL = links.NormalizeURL(url)
	return b
}

// AddSource records a provenance URL.
func (b *LegislatorBuilder) AddSource(url string) *LegislatorBuilder {
	b.sources.Add(url)
	return b
}

// Warnings returns the locally absorbed problems seen so far.
func (b *LegislatorBuilder) Warnings() []error {
	return b.warnings
}

// Build validates and returns the legislator.
func (b *LegislatorBuilder) Build() (*core.Legislator, error) {
	l := b.l
	l.Offices = append([]core.Office{}, b.l.Offices...)
	l.Sources = b.sources.All()
	for _, other := range l.OtherParties {
		if other == l.Party {
			return nil, &core.EntityError{Entity: "legislator " + describe(l.Name), Err: fmt.Errorf("other parties repeat primary party %q", l.Party)}
		}
	}
	if err := Validate(&l); err != nil {
		return nil, &core.EntityError{Entity: "legislator " + describe(l.Name), Err: err}
	}
	return &l, nil
}

// Legislator builds a canonical legislator from an extracted tuple. The
// returned warnings describe optional data that was dropped.
func Legislator(raw core.RawLegislator) (*core.Legislator, []error, error) {
	b := NewLegislator(raw.Term, raw.Chamber, raw.District, raw.Name).
		Party(raw.PartyCodes...).
		Email(raw.Email).
		URL(raw.URL).
		PhotoURL(raw.PhotoURL)
	for _, o := range raw.Offices {
		b.AddOffice(o)
	}
	for _, s := range raw.Sources {
		b.AddSource(s)
	}
	l, err := b.Build()
	return l, b.Warnings(), err
}
