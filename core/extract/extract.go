// Package extract holds what jurisdiction adapters share: the capability
// interfaces, the adapter registry, the per-run environment, and the
// generic extraction patterns (row schemas, label/value pairing, joint
// committee membership layouts).
//
// An adapter implements Adapter plus any subset of the capability
// interfaces. Callers discover capabilities with a type assertion.
package extract

import (
	"context"

	"github.com/gaurav-prasanna/legispipe/core"
)

// Adapter identifies one jurisdiction's extraction strategies.
type Adapter interface {
	// ID is the jurisdiction abbreviation, e.g. "id".
	ID() string
	// Name is the human-readable jurisdiction name.
	Name() string
}

// CommitteeExtractor extracts raw committees for one chamber. Joint
// committees are requested with core.Joint. Chambers the jurisdiction
// does not publish return core.ErrUnsupported.
type CommitteeExtractor interface {
	Committees(ctx context.Context, env *Env, chamber core.Chamber) ([]core.RawCommittee, error)
}

// LegislatorExtractor extracts raw legislators for one chamber and term.
type LegislatorExtractor interface {
	Legislators(ctx context.Context, env *Env, term string, chamber core.Chamber) ([]core.RawLegislator, error)
}

// SessionLister lists the session names the jurisdiction's site offers.
type SessionLister interface {
	Sessions(ctx context.Context, env *Env) ([]string, error)
}

// TextExtractor turns a fetched bill document into plain text.
type TextExtractor interface {
	Text(doc core.Document, data []byte) (string, error)
}

// LatestTermOnly is implemented by adapters whose sites only publish the
// current term. Runs against them must target the latest term.
type LatestTermOnly interface {
	LatestTermOnly() bool
}
