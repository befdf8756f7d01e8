package finder_test

import (
	"context"
	"testing"
	"time"

	"github.com/oneconcern/repofind/pkg/errors"
	"github.com/oneconcern/repofind/pkg/finder"
	"github.com/oneconcern/repofind/pkg/finder/mockfinder"
	"github.com/oneconcern/repofind/pkg/finder/status"
	"github.com/oneconcern/repofind/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func verifyNoLeaks(t *testing.T) {
	goleak.VerifyNone(t,
		// opencensus stats collection goroutine
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

func testResult(t *testing.T, name string, priority int, refs ...string) model.Result {
	checksums := make(model.RefChecksums, len(refs))
	for _, ref := range refs {
		checksums[ref] = ""
	}
	r, err := model.NewResult(
		model.Remote{Name: name, URL: name, GPGVerify: true, GPGVerifySummary: true},
		priority,
		checksums,
		time.Time{},
	)
	require.NoError(t, err)
	return r
}

func TestResolveAllValidation(t *testing.T) {
	ctx := context.Background()
	ok := mockfinder.Returning("ok")

	_, err := finder.ResolveAll(ctx, nil, []string{"ref"})
	assert.ErrorIs(t, err, status.ErrNoFinders)

	_, err = finder.ResolveAll(ctx, []finder.Finder{}, []string{"ref"})
	assert.ErrorIs(t, err, status.ErrNoFinders)

	_, err = finder.ResolveAll(ctx, []finder.Finder{ok}, nil)
	assert.ErrorIs(t, err, status.ErrInvalidRef)

	_, err = finder.ResolveAll(ctx, []finder.Finder{ok}, []string{})
	assert.ErrorIs(t, err, status.ErrInvalidRef)

	_, err = finder.ResolveAll(ctx, []finder.Finder{ok}, []string{"ok", "caf\xc3\xa9"})
	assert.ErrorIs(t, err, status.ErrInvalidRef, "a ref with non-ASCII bytes is rejected up front")
}

func TestResolveOne(t *testing.T) {
	ctx := context.Background()
	resultA := testResult(t, "https://example.com/a", 100, "ref")

	results, err := finder.ResolveOne(ctx, mockfinder.Returning("one", resultA), []string{"ref"})
	require.NoError(t, err)
	assert.Equal(t, model.Results{resultA}, results)

	_, err = finder.ResolveOne(ctx, nil, []string{"ref"})
	assert.ErrorIs(t, err, status.ErrNoFinders)

	_, err = finder.ResolveOne(ctx, mockfinder.Returning("one"), []string{""})
	assert.ErrorIs(t, err, status.ErrInvalidRef)

	boom := errors.New("boom")
	_, err = finder.ResolveOne(ctx, mockfinder.Failing("bad", boom), []string{"ref"})
	assert.ErrorIs(t, err, boom, "a single finder's failure is surfaced by ResolveOne")
}

func TestResolveAllPartialFailure(t *testing.T) {
	defer verifyNoLeaks(t)
	ctx := context.Background()

	resultA := testResult(t, "https://example.com/a", 100, "ref")
	finders := []finder.Finder{
		mockfinder.Failing("bad", errors.New("this finder always fails")),
		mockfinder.Returning("good", resultA),
	}

	results, err := finder.ResolveAll(ctx, finders, []string{"ref"})
	require.NoError(t, err, "one failing finder must not fail the whole query")
	assert.Equal(t, model.Results{resultA}, results)
}

func TestResolveAllAllFail(t *testing.T) {
	defer verifyNoLeaks(t)
	ctx := context.Background()

	finders := []finder.Finder{
		mockfinder.Failing("bad1", errors.New("nope")),
		mockfinder.Failing("bad2", errors.New("nope either")),
	}

	results, err := finder.ResolveAll(ctx, finders, []string{"ref"})
	require.NoError(t, err, "an all-finders-failed run is an empty result, not an error")
	assert.Empty(t, results)
}

func TestResolveAllSorted(t *testing.T) {
	defer verifyNoLeaks(t)
	ctx := context.Background()

	r1 := testResult(t, "b", 50, "x", "y")
	r2 := testResult(t, "a", 50, "x", "y")
	r3 := testResult(t, "c", 100, "x")

	// contributions arrive from racing finders in arbitrary order
	finders := []finder.Finder{
		mockfinder.Returning("one", r1),
		mockfinder.Returning("two", r3, r2),
	}

	results, err := finder.ResolveAll(ctx, finders, []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, model.Results{r2, r1, r3}, results)
}

func TestResolveAllNoCrossFinderDedup(t *testing.T) {
	defer verifyNoLeaks(t)
	ctx := context.Background()

	same := testResult(t, "https://example.com/shared", 50, "ref")
	finders := []finder.Finder{
		mockfinder.Returning("one", same),
		mockfinder.Returning("two", same),
	}

	results, err := finder.ResolveAll(ctx, finders, []string{"ref"})
	require.NoError(t, err)
	assert.Len(t, results, 2, "each finder's claim stands on its own, even for the same remote")
}

func TestResolveAllConcurrency(t *testing.T) {
	defer verifyNoLeaks(t)
	ctx := context.Background()

	const delay = 200 * time.Millisecond
	finders := []finder.Finder{
		mockfinder.Delayed("one", delay, testResult(t, "a", 50, "ref")),
		mockfinder.Delayed("two", delay, testResult(t, "b", 50, "ref")),
		mockfinder.Delayed("three", delay, testResult(t, "c", 50, "ref")),
		mockfinder.Delayed("four", delay, testResult(t, "d", 50, "ref")),
	}

	t0 := time.Now()
	results, err := finder.ResolveAll(ctx, finders, []string{"ref"})
	elapsed := time.Since(t0)

	require.NoError(t, err)
	assert.Len(t, results, 4, "completion waits for every finder")
	assert.GreaterOrEqual(t, elapsed, delay)
	assert.Less(t, elapsed, 3*delay,
		"finders run concurrently: wall time tracks max(delays), not sum(delays)")
}

func TestResolveAllCancellation(t *testing.T) {
	defer verifyNoLeaks(t)

	ctx, cancel := context.WithCancel(context.Background())
	finders := []finder.Finder{
		mockfinder.Delayed("slow1", time.Minute, testResult(t, "a", 50, "ref")),
		mockfinder.Delayed("slow2", time.Minute, testResult(t, "b", 50, "ref")),
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	done := make(chan struct{})
	var (
		results model.Results
		err     error
	)
	go func() {
		defer close(done)
		results, err = finder.ResolveAll(ctx, finders, []string{"ref"})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cancellation must terminate ResolveAll promptly, not hang")
	}

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results, "a cancelled query hands back no partial result list")
}
