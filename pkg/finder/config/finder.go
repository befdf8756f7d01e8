// Package config implements a finder consulting the locally configured
// remotes and their advertised ref lists.
package config

import (
	"context"
	"sort"
	"time"

	"github.com/oneconcern/repofind/pkg/finder"
	"github.com/oneconcern/repofind/pkg/model"
	"github.com/oneconcern/repofind/pkg/remoteconfig"
	"go.uber.org/zap"
)

// Priority assigned to results from this finder. Chosen to sort after
// mount-based results.
const Priority = 100

var _ finder.Finder = &configFinder{}

// New creates a finder over the remotes configured in store.
//
// The finder's configuration is frozen at construction time; it holds no
// per-call state.
func New(store remoteconfig.Store, opts ...Option) finder.Finder {
	f := &configFinder{
		store: store,
		l:     zap.NewNop(),
	}
	for _, apply := range opts {
		apply(f)
	}
	return f
}

type configFinder struct {
	store remoteconfig.Store
	l     *zap.Logger
}

func (c *configFinder) String() string {
	return "config"
}

// Resolve intersects the requested refs with the ref lists advertised by
// every configured remote. One result is produced per remote with a
// non-empty intersection. An unreadable remote is skipped, never fatal.
func (c *configFinder) Resolve(ctx context.Context, refs []string) (model.Results, error) {
	remotes, err := c.store.ListRemotes(ctx)
	if err != nil {
		return nil, err
	}

	remoteToRefs := make(map[string]model.RefChecksums)
	for _, remoteName := range remotes {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		advertised, lerr := c.store.ListRefs(ctx, remoteName)
		if lerr != nil {
			c.l.Debug("ignoring remote: error loading its refs",
				zap.String("remote", remoteName),
				zap.Error(lerr))
			continue
		}

		for _, ref := range refs {
			sum, ok := advertised[ref]
			if !ok {
				continue
			}
			if !model.IsValidChecksum(sum) {
				c.l.Debug("malformed advertised checksum, carrying ref with checksum unknown",
					zap.String("remote", remoteName),
					zap.String("ref", ref))
				sum = ""
			}
			supported, ok := remoteToRefs[remoteName]
			if !ok {
				supported = make(model.RefChecksums)
				remoteToRefs[remoteName] = supported
			}
			supported[ref] = sum
		}
	}

	// aggregate, in a deterministic remote order
	matched := make([]string, 0, len(remoteToRefs))
	for remoteName := range remoteToRefs {
		matched = append(matched, remoteName)
	}
	sort.Strings(matched)

	results := make(model.Results, 0, len(matched))
	for _, remoteName := range matched {
		// resolve the full inherited configuration, so verification policy
		// is consistent with every other lookup of this remote
		remote, rerr := c.store.Remote(ctx, remoteName)
		if rerr != nil {
			c.l.Debug("ignoring remote: configuration could not be resolved",
				zap.String("remote", remoteName),
				zap.Error(rerr))
			continue
		}

		// the advertising configuration is trusted as-is: freshness is left
		// unknown and checked downstream
		result, rerr := model.NewResult(remote, Priority, remoteToRefs[remoteName], time.Time{})
		if rerr != nil {
			c.l.Debug("ignoring remote", zap.String("remote", remoteName), zap.Error(rerr))
			continue
		}
		results = append(results, result)
	}

	return results, nil
}
