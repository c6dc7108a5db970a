package render

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/output"
)

// JSONRenderer writes the roster as one JSON document with a summary of
// counts per chamber and per party.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type roster struct {
	Jurisdiction string             `json:"jurisdiction"`
	Summary      summary            `json:"summary"`
	Committees   []*core.Committee  `json:"committees"`
	Legislators  []*core.Legislator `json:"legislators"`
}

type summary struct {
	Committees  map[core.Chamber]int `json:"committees"`
	Legislators map[core.Chamber]int `json:"legislators"`
	Parties     []partyCount         `json:"parties"`
}

type partyCount struct {
	Party string `json:"party"`
	Seats int    `json:"seats"`
}

// Render converts a snapshot into the roster JSON.
func (r *JSONRenderer) Render(snap output.Snapshot) ([]byte, error) {
	doc := roster{
		Jurisdiction: snap.Jurisdiction,
		Summary:      summarize(snap),
		Committees:   append([]*core.Committee{}, snap.Committees...),
		Legislators:  append([]*core.Legislator{}, snap.Legislators...),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// summarize counts entities per chamber and seats per primary party,
// largest party first.
func summarize(snap output.Snapshot) summary {
	s := summary{
		Committees:  map[core.Chamber]int{},
		Legislators: map[core.Chamber]int{},
	}
	for _, c := range snap.Committees {
		s.Committees[c.Chamber]++
	}
	seats := map[string]int{}
	for _, l := range snap.Legislators {
		s.Legislators[l.Chamber]++
		seats[l.Party]++
	}
	for party, n := range seats {
		s.Parties = append(s.Parties, partyCount{Party: party, Seats: n})
	}
	sort.Slice(s.Parties, func(i, j int) bool {
		if s.Parties[i].Seats != s.Parties[j].Seats {
			return s.Parties[i].Seats > s.Parties[j].Seats
		}
		return s.Parties[i].Party < s.Parties[j].Party
	})
	if s.Parties == nil {
		s.Parties = []partyCount{}
	}
	return s
}
