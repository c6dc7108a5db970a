package core

import "time"

// Chamber is one of the two legislative bodies, or joint for bodies spanning both.
type Chamber string

const (
	Upper Chamber = "upper"
	Lower Chamber = "lower"
	Joint Chamber = "joint"
)

// ParseChamber maps a CLI or metadata spelling onto a Chamber.
func ParseChamber(s string) (Chamber, bool) {
	switch Chamber(s) {
	case Upper, Lower, Joint:
		return Chamber(s), true
	}
	return "", false
}

// OfficeType distinguishes capitol offices from district offices.
type OfficeType string

const (
	CapitolOffice  OfficeType = "capitol"
	DistrictOffice OfficeType = "district"
)

// UnknownParty is the primary party of a legislator whose annotation
// resolved to no known party code.
const UnknownParty = "Unknown"

// Membership relates a committee to a legislator name. Chamber is set
// only on joint committees, where it records the member's sub-chamber.
type Membership struct {
	Name    string  `json:"legislator_name" validate:"required"`
	Role    string  `json:"role,omitempty"`
	Chamber Chamber `json:"chamber,omitempty" validate:"omitempty,oneof=upper lower"`
}

// Committee is a standing or joint legislative committee.
type Committee struct {
	Chamber     Chamber      `json:"chamber" validate:"required,oneof=upper lower joint"`
	Name        string       `json:"committee" validate:"required"`
	Description string       `json:"description,omitempty"`
	OfficeHours string       `json:"office_hours,omitempty"`
	Secretary   string       `json:"secretary,omitempty"`
	OfficePhone string       `json:"office_phone,omitempty"`
	Members     []Membership `json:"members" validate:"dive"`
	Sources     []string     `json:"sources" validate:"dive,url"`
}

// Office is a legislator's capitol or district office.
type Office struct {
	Name    string     `json:"name" validate:"required"`
	Type    OfficeType `json:"type" validate:"required,oneof=capitol district"`
	Phone   string     `json:"phone,omitempty"`
	Fax     *string    `json:"fax"`
	Email   *string    `json:"email"`
	Address string     `json:"address" validate:"required"`
}

// Legislator is a member of one chamber for one term.
type Legislator struct {
	Term         string   `json:"term" validate:"required"`
	Chamber      Chamber  `json:"chamber" validate:"required,oneof=upper lower"`
	District     string   `json:"district" validate:"required,numeric"`
	Name         string   `json:"full_name" validate:"required"`
	Party        string   `json:"party" validate:"required"`
	OtherParties []string `json:"other_parties,omitempty"`
	Offices      []Office `json:"offices" validate:"dive"`
	Email        string   `json:"email,omitempty"`
	URL          string   `json:"url,omitempty"`
	PhotoURL     string   `json:"photo_url,omitempty"`
	Sources      []string `json:"sources" validate:"dive,url"`
}

// Term is a multi-year legislative period containing one or more sessions.
type Term struct {
	Name      string   `yaml:"name" validate:"required"`
	Sessions  []string `yaml:"sessions" validate:"min=1,dive,required"`
	StartYear int      `yaml:"start_year" validate:"required"`
	EndYear   int      `yaml:"end_year" validate:"required,gtefield=StartYear"`
}

// Session is a single convened sitting within a term.
type Session struct {
	ID          string     `yaml:"-"`
	DisplayName string     `yaml:"display_name" validate:"required"`
	ScrapedName string     `yaml:"scraped_name"`
	StartDate   *time.Time `yaml:"start_date,omitempty"`
	EndDate     *time.Time `yaml:"end_date,omitempty"`
}

// Field is one named value of an extracted row, in document order.
type Field struct {
	Key   string
	Value string
}

// Committee field keys.
const (
	FieldCommittee   = "committee"
	FieldDescription = "description"
	FieldOfficeHours = "office_hours"
	FieldSecretary   = "secretary"
	FieldOfficePhone = "office_phone"
)

// RawMember is a membership tuple as extracted, before normalisation.
type RawMember struct {
	Name    string
	Role    string
	Chamber Chamber
}

// RawCommittee is the extractor's output for one committee.
type RawCommittee struct {
	Chamber Chamber
	Fields  []Field
	Members []RawMember
	Sources []string
}

// Name returns the value of the "committee" field, if any.
func (r RawCommittee) Name() string {
	for _, f := range r.Fields {
		if f.Key == FieldCommittee {
			return f.Value
		}
	}
	return ""
}

// RawOffice is an office block as extracted. Phone may be empty, in which
// case the builder looks for it on the last address line.
type RawOffice struct {
	Name         string
	Type         OfficeType
	AddressLines []string
	Phone        string
	Fax          string
	Email        string
}

// RawLegislator is the extractor's output for one legislator.
type RawLegislator struct {
	Term       string
	Chamber    Chamber
	District   string
	Name       string
	PartyCodes []string
	Offices    []RawOffice
	Email      string
	URL        string
	PhotoURL   string
	Sources    []string
}
