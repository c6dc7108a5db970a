package build

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/links"
	"github.com/gaurav-prasanna/legispipe/core/text"
)

// CommitteeBuilder assembles one Committee while its source is walked.
// Optional fields default to empty and are left unset in the output.
type CommitteeBuilder struct {
	c       core.Committee
	members map[string]bool
	sources *links.Set
}

// NewCommittee starts a committee in the given chamber.
func NewCommittee(chamber core.Chamber, name string) *CommitteeBuilder {
	return &CommitteeBuilder{
		c:       core.Committee{Chamber: chamber, Name: text.CleanName(name)},
		members: make(map[string]bool),
		sources: links.NewSet(),
	}
}

// Set assigns one named field (core.FieldCommittee and friends). Unknown
// keys are rejected.
func (b *CommitteeBuilder) Set(key, value string) error {
	value = text.CollapseSpace(text.StripNBSP(value))
	switch key {
	case core.FieldCommittee:
		b.c.Name = value
	case core.FieldDescription:
		b.c.Description = value
	case core.FieldOfficeHours:
		b.c.OfficeHours = value
	case core.FieldSecretary:
		b.c.Secretary = value
	case core.FieldOfficePhone:
		b.c.OfficePhone = value
	default:
		return fmt.Errorf("unknown committee field %q", key)
	}
	return nil
}

// Apply sets every field in order, stopping at the first unknown key.
func (b *CommitteeBuilder) Apply(fields []core.Field) error {
	for _, f := range fields {
		if err := b.Set(f.Key, f.Value); err != nil {
			return err
		}
	}
	return nil
}

// AddMember appends a membership. A name equal (after normalisation) to
// one already present is not re-added; AddMember then reports false.
// The chamber tag is only kept on joint committees.
func (b *CommitteeBuilder) AddMember(name, role string, chamber core.Chamber) bool {
	name = text.CleanName(name)
	key := strings.ToLower(name)
	if name == "" || b.members[key] {
		return false
	}
	b.members[key] = true

	if b.c.Chamber != core.Joint {
		chamber = ""
	}
	b.c.Members = append(b.c.Members, core.Membership{
		Name:    name,
		Role:    text.CollapseSpace(text.StripNBSP(role)),
		Chamber: chamber,
	})
	return true
}

// AddSource records a provenance URL.
func (b *CommitteeBuilder) AddSource(url string) {
	b.sources.Add(url)
}

// Build validates and returns the committee.
func (b *CommitteeBuilder) Build() (*core.Committee, error) {
	c := b.c
	c.Members = append([]core.Membership{}, b.c.Members...)
	c.Sources = b.sources.All()
	if err := Validate(&c); err != nil {
		return nil, &core.EntityError{Entity: "committee " + describe(c.Name), Err: err}
	}
	return &c, nil
}

// Committee builds a canonical committee from an extracted tuple.
func Committee(raw core.RawCommittee) (*core.Committee, error) {
	b := NewCommittee(raw.Chamber, "")
	if err := b.Apply(raw.Fields); err != nil {
		return nil, &core.EntityError{Entity: "committee " + describe(raw.Name()), Err: err}
	}
	for _, m := range raw.Members {
		b.AddMember(m.Name, m.Role, m.Chamber)
	}
	for _, s := range raw.Sources {
		b.AddSource(s)
	}
	return b.Build()
}

func describe(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return fmt.Sprintf("%q", name)
}
