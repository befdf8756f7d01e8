package finder

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oneconcern/repofind/pkg/finder/status"
	"github.com/oneconcern/repofind/pkg/model"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	typicalResultsNum = 16 // default number of allocated slots for results
)

// finderEvent catches a single finder's terminal outcome: either a result
// list or an error, never both.
type finderEvent struct {
	finder  string
	results model.Results
	err     error
}

// ResolveOne delegates the resolution of refs to exactly one finder.
//
// Refs are validated before any asynchronous work starts. The finder's
// results are returned unsorted: use ResolveAll to obtain the merged,
// ordered view over several finders.
func ResolveOne(ctx context.Context, f Finder, refs []string, opts ...Option) (model.Results, error) {
	settings := defaultSettings(opts...)
	if f == nil {
		return nil, status.ErrNoFinders
	}
	if err := model.ValidateRefs(refs); err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrInvalidRef, err)
	}

	var err error
	if settings.m != nil {
		t0 := time.Now()
		defer func() {
			settings.m.Usage.UsedAll(t0, "ResolveOne")(err)
		}()
	}

	var results model.Results
	results, err = f.Resolve(ctx, refs)
	if err != nil {
		settings.l.Debug("error resolving refs",
			zap.String("finder", f.String()),
			zap.Error(err))
		return nil, err
	}
	return results, nil
}

// ResolveAll queries every finder in parallel and combines the results.
//
// All finders are started before any completion is awaited, and every one
// is awaited to its terminal state. A failing finder contributes nothing:
// its error is logged at debug level and absorbed. Zero successful finders
// yield an empty list, not an error. The only failures surfaced to the
// caller are an empty finder list, an invalid ref list, and cancellation
// of ctx.
//
// The combined list is sorted with the model comparator. No cross-finder
// deduplication is performed: each finder's result stands for a candidate
// from that finder, even if another finder names the same physical remote.
func ResolveAll(ctx context.Context, finders []Finder, refs []string, opts ...Option) (model.Results, error) {
	settings := defaultSettings(opts...)
	if len(finders) == 0 {
		return nil, status.ErrNoFinders
	}
	if err := model.ValidateRefs(refs); err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrInvalidRef, err)
	}

	var err error
	t0 := time.Now()
	if settings.m != nil {
		defer func() {
			settings.m.Usage.UsedAll(t0, "ResolveAll")(err)
		}()
	}

	names := make([]string, 0, len(finders))
	for _, f := range finders {
		names = append(names, f.String())
	}
	settings.l.Debug("resolving refs",
		zap.Strings("refs", refs),
		zap.Strings("finders", names))

	// fan out: all resolutions are in flight before any is collected
	eventC := make(chan finderEvent, len(finders))
	var wg sync.WaitGroup
	for _, toPin := range finders {
		f := toPin
		wg.Add(1)
		go func() {
			defer wg.Done()
			results, ferr := f.Resolve(ctx, refs)
			eventC <- finderEvent{finder: f.String(), results: results, err: ferr}
		}()
	}
	go func() {
		wg.Wait()
		close(eventC)
	}()

	// collect: the accumulator is exclusively owned by this loop, results
	// are moved in wholesale from each successful contribution
	accumulated := make(model.Results, 0, typicalResultsNum)
	var finderErrs error
	failures := 0
	for event := range eventC {
		if event.err != nil {
			settings.l.Debug("finder contributed no results",
				zap.String("finder", event.finder),
				zap.Error(event.err))
			finderErrs = multierr.Append(finderErrs, event.err)
			failures++
			continue
		}
		accumulated = append(accumulated, event.results...)
	}

	if settings.m != nil {
		settings.m.Resolve.Record(len(accumulated), failures)
	}

	// a cancelled query must not hand back a partial list
	if err = ctx.Err(); err != nil {
		settings.l.Debug("resolution cancelled", zap.Error(finderErrs))
		return nil, err
	}

	sort.Sort(accumulated)

	settings.l.Debug("finished resolving refs",
		zap.Int("results", len(accumulated)),
		zap.Int("failed finders", failures),
		zap.Duration("elapsed", time.Since(t0)))

	return accumulated, nil
}
