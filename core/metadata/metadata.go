// Package metadata loads the per-jurisdiction term and session tables.
// The extraction core only consumes them: to check that a run targets a
// known (and, where required, the latest) term, and to reconcile the
// session names a site publishes against the known ones.
package metadata

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/legispipe/core"
)

//go:embed defaults.yaml
var defaults []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

// Jurisdiction is one legislature's metadata.
type Jurisdiction struct {
	ID              string                  `yaml:"-"`
	Name            string                  `yaml:"name" validate:"required"`
	LegislatureName string                  `yaml:"legislature_name"`
	Chambers        []core.Chamber          `yaml:"chambers" validate:"min=1,dive,oneof=upper lower"`
	Terms           []core.Term             `yaml:"terms" validate:"min=1,dive"`
	SessionDetails  map[string]core.Session `yaml:"session_details" validate:"dive"`
	IgnoredSessions []string                `yaml:"ignored_scraped_sessions"`
}

// Table holds every jurisdiction's metadata.
type Table struct {
	Jurisdictions map[string]*Jurisdiction `yaml:"jurisdictions" validate:"min=1,dive,required"`
}

// Default returns the embedded metadata table.
func Default() (*Table, error) {
	return Load(defaults)
}

// LoadFile reads a metadata table from a YAML file.
func LoadFile(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	return Load(b)
}

// Load parses and validates a metadata table. Every session a term names
// must have session details.
func Load(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing metadata: %w", err)
	}
	if err := validate.Struct(&t); err != nil {
		return nil, fmt.Errorf("validating metadata: %w", err)
	}

	for id, j := range t.Jurisdictions {
		j.ID = id
		for sid, s := range j.SessionDetails {
			s.ID = sid
			j.SessionDetails[sid] = s
		}
		for _, term := range j.Terms {
			for _, sid := range term.Sessions {
				if _, ok := j.SessionDetails[sid]; !ok {
					return nil, fmt.Errorf("validating metadata: %s: term %s: session %q has no details", id, term.Name, sid)
				}
			}
		}
	}
	return &t, nil
}

// Jurisdiction returns one jurisdiction's metadata. Unknown IDs are a
// *core.ConfigError.
func (t *Table) Jurisdiction(id string) (*Jurisdiction, error) {
	j, ok := t.Jurisdictions[strings.ToLower(id)]
	if !ok {
		return nil, &core.ConfigError{Jurisdiction: id, Msg: "no metadata"}
	}
	return j, nil
}

// IDs returns the jurisdiction IDs, sorted.
func (t *Table) IDs() []string {
	ids := make([]string, 0, len(t.Jurisdictions))
	for id := range t.Jurisdictions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ValidateTerm checks that term is a known term of the jurisdiction and,
// when latestOnly is set, that it is the latest one.
func (t *Table) ValidateTerm(jurisdiction, term string, latestOnly bool) error {
	j, err := t.Jurisdiction(jurisdiction)
	if err != nil {
		return err
	}
	if _, ok := j.Term(term); !ok {
		return &core.ConfigError{Jurisdiction: jurisdiction, Msg: fmt.Sprintf("unknown term %q", term)}
	}
	if latest := j.LatestTerm(); latestOnly && latest.Name != term {
		return &core.ConfigError{Jurisdiction: jurisdiction, Msg: fmt.Sprintf("term %q: only the latest term (%s) can be scraped", term, latest.Name)}
	}
	return nil
}

// Term looks up a term by name.
func (j *Jurisdiction) Term(name string) (core.Term, bool) {
	for _, t := range j.Terms {
		if t.Name == name {
			return t, true
		}
	}
	return core.Term{}, false
}

// LatestTerm is the last term listed.
func (j *Jurisdiction) LatestTerm() core.Term {
	return j.Terms[len(j.Terms)-1]
}

// Sessions returns a term's session details in term order.
func (j *Jurisdiction) Sessions(term string) []core.Session {
	t, ok := j.Term(term)
	if !ok {
		return nil
	}
	out := make([]core.Session, 0, len(t.Sessions))
	for _, sid := range t.Sessions {
		out = append(out, j.SessionDetails[sid])
	}
	return out
}

// UnknownSessions returns the scraped session names that are neither a
// known session's scraped name nor explicitly ignored, in input order.
// Sessions without a scraped name are matched on their display name.
func (j *Jurisdiction) UnknownSessions(scraped []string) []string {
	known := make(map[string]bool, len(j.SessionDetails)+len(j.IgnoredSessions))
	for _, s := range j.SessionDetails {
		name := s.ScrapedName
		if name == "" {
			name = s.DisplayName
		}
		known[name] = true
	}
	for _, name := range j.IgnoredSessions {
		known[name] = true
	}

	var unknown []string
	for _, name := range scraped {
		if name = strings.TrimSpace(name); name != "" && !known[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
