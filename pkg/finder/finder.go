// Package finder resolves content refs to candidate remote repositories.
//
// A Finder implements one discovery strategy (e.g. scanning removable
// volumes, or consulting locally configured remotes). The package drives
// one or many finders and merges their outputs into a single ordered
// result list: per-finder failures are tolerated and never fail the
// whole query.
package finder

import (
	"context"

	"github.com/oneconcern/repofind/pkg/model"
)

// Finder implementations know how to resolve a set of refs to zero or more
// candidate remotes.
//
// A finder is configured once at construction time and holds no per-call
// state: concurrent Resolve calls on the same instance are safe and
// independent. Resolve honors cancellation through its context; on
// cancellation it returns promptly with ctx.Err().
type Finder interface {
	// String names the finder, for logs
	String() string

	// Resolve reports the remotes this finder believes serve some subset of
	// refs. An empty result list with a nil error is a valid outcome.
	Resolve(ctx context.Context, refs []string) (model.Results, error)
}
