// Package jurisdictions wires every jurisdiction adapter into one registry.
package jurisdictions

import (
	"github.com/gaurav-prasanna/legispipe/core/extract"
	"github.com/gaurav-prasanna/legispipe/jurisdictions/de"
	"github.com/gaurav-prasanna/legispipe/jurisdictions/id"
	"github.com/gaurav-prasanna/legispipe/jurisdictions/nd"
	"github.com/gaurav-prasanna/legispipe/jurisdictions/ne"
	"github.com/gaurav-prasanna/legispipe/jurisdictions/ny"
)

// Registry returns a registry holding every known adapter.
func Registry() *extract.Registry {
	return extract.NewRegistry(
		de.New(),
		id.New(),
		nd.New(),
		ne.New(),
		ny.New(),
	)
}
