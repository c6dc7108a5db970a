package build

import (
	"errors"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/text"
)

// ErrEmptyAddress is returned for an office block with no address text.
var ErrEmptyAddress = errors.New("office has no address")

// phoneRe matches a US phone number, optionally labelled and with an extension.
var phoneRe = regexp.MustCompile(`(?i)^(?:(?:phone|tel|ph)\.?:?\s*)?(\(?\d{3}\)?[\s.-]*\d{3}[\s.-]*\d{4}(?:\s*(?:x|ext\.?)\s*\d+)?)$`)

// MatchPhone returns the phone number in s when s is nothing but a
// (possibly labelled) phone number.
func MatchPhone(s string) (string, bool) {
	m := phoneRe.FindStringSubmatch(text.CollapseSpace(text.StripNBSP(s)))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// AssembleOffice turns an extracted office block into an Office. Address
// lines are joined in document order; when no phone was extracted
// separately, a phone number on the last address line is moved out of
// the address.
func AssembleOffice(raw core.RawOffice) (core.Office, error) {
	var lines []string
	for _, l := range raw.AddressLines {
		if l = text.CollapseSpace(text.StripNBSP(l)); l != "" {
			lines = append(lines, l)
		}
	}

	phone := text.CollapseSpace(raw.Phone)
	if n := len(lines); n > 0 {
		if p, ok := MatchPhone(lines[n-1]); ok {
			if phone == "" {
				phone = p
			}
			lines = lines[:n-1]
		}
	}
	if len(lines) == 0 {
		return core.Office{}, ErrEmptyAddress
	}

	officeType := raw.Type
	if officeType == "" {
		officeType = core.CapitolOffice
		if strings.Contains(strings.ToLower(raw.Name), "district") {
			officeType = core.DistrictOffice
		}
	}
	name := text.CollapseSpace(raw.Name)
	if name == "" {
		name = "Capitol Office"
		if officeType == core.DistrictOffice {
			name = "District Office"
		}
	}

	return core.Office{
		Name:    name,
		Type:    officeType,
		Phone:   phone,
		Fax:     optional(raw.Fax),
		Email:   optional(raw.Email),
		Address: strings.Join(lines, "\n"),
	}, nil
}

func optional(s string) *string {
	s = text.CollapseSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
