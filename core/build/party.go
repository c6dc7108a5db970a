// Package build assembles raw extracted tuples into canonical entities and
// enforces the data-model invariants on the way.
package build

import (
	"strings"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/text"
)

const (
	Republican = "Republican"
	Democratic = "Democratic"
)

// partyCodes maps the abbreviations found in district annotations onto
// canonical party names.
var partyCodes = map[string]string{
	"R":  Republican,
	"D":  Democratic,
	"WF": "Working Families",
	"C":  "Conservative",
	"IP": "Independence",
	"G":  "Green",
	"L":  "Libertarian",
}

// canonicalParties is the set of canonical names; resolving one of them
// returns it unchanged.
var canonicalParties = func() map[string]string {
	m := make(map[string]string, len(partyCodes))
	for _, name := range partyCodes {
		m[strings.ToLower(name)] = name
	}
	return m
}()

// PartyKind tags a PartyResolution.
type PartyKind int

const (
	// CanonicalParty means at least one token resolved to a known party.
	CanonicalParty PartyKind = iota
	// RawParty means nothing resolved; Others holds the tokens verbatim.
	RawParty
)

// PartyResolution is the result of resolving a party annotation.
type PartyResolution struct {
	Kind    PartyKind
	Primary string
	Others  []string
}

// lookupParty resolves one token, either a code or a canonical name.
func lookupParty(token string) (string, bool) {
	if name, ok := partyCodes[strings.ToUpper(token)]; ok {
		return name, true
	}
	name, ok := canonicalParties[strings.ToLower(token)]
	return name, ok
}

// ResolveParty maps party-code tokens onto a primary party and the other
// parties. Precedence for the primary party is Republican, then Democratic,
// then the first other token that resolved. When nothing resolves the
// primary party is core.UnknownParty and the tokens are kept verbatim.
func ResolveParty(tokens []string) PartyResolution {
	var cleaned, mapped []string
	primary := ""
	for _, tok := range tokens {
		tok = text.CollapseSpace(text.StripNBSP(tok))
		if tok == "" {
			continue
		}
		cleaned = append(cleaned, tok)
		name, ok := lookupParty(tok)
		if !ok {
			mapped = append(mapped, tok)
			continue
		}
		mapped = append(mapped, name)
		switch {
		case name == Republican:
			primary = Republican
		case name == Democratic && primary != Republican:
			primary = Democratic
		case primary == "":
			primary = name
		}
	}

	if primary == "" {
		return PartyResolution{
			Kind:    RawParty,
			Primary: core.UnknownParty,
			Others:  without(cleaned, core.UnknownParty),
		}
	}
	return PartyResolution{
		Kind:    CanonicalParty,
		Primary: primary,
		Others:  without(mapped, primary),
	}
}

// without returns list minus drop, de-duplicated, in first-seen order.
func without(list []string, drop string) []string {
	var out []string
	seen := map[string]bool{drop: true}
	for _, s := range list {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
