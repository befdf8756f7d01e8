// Package mockfinder provides a mock for the finder.Finder interface,
// with an injectable function to define the resolution outcome.
package mockfinder

import (
	"context"
	"time"

	"github.com/oneconcern/repofind/pkg/finder"
	"github.com/oneconcern/repofind/pkg/model"
)

var _ finder.Finder = &FinderMock{}

// FinderMock implements finder.Finder with an overridable Resolve.
type FinderMock struct {
	Name        string
	ResolveFunc func(ctx context.Context, refs []string) (model.Results, error)
}

func (m *FinderMock) String() string {
	if m.Name == "" {
		return "mockfinder"
	}
	return m.Name
}

func (m *FinderMock) Resolve(ctx context.Context, refs []string) (model.Results, error) {
	return m.ResolveFunc(ctx, refs)
}

// Returning builds a mock that always succeeds with the given results
func Returning(name string, results ...model.Result) *FinderMock {
	return &FinderMock{
		Name: name,
		ResolveFunc: func(_ context.Context, _ []string) (model.Results, error) {
			return results, nil
		},
	}
}

// Failing builds a mock that always fails with err
func Failing(name string, err error) *FinderMock {
	return &FinderMock{
		Name: name,
		ResolveFunc: func(_ context.Context, _ []string) (model.Results, error) {
			return nil, err
		},
	}
}

// Delayed builds a mock that succeeds with the given results after some
// delay, or fails early with the context's error when cancelled.
func Delayed(name string, delay time.Duration, results ...model.Result) *FinderMock {
	return &FinderMock{
		Name: name,
		ResolveFunc: func(ctx context.Context, _ []string) (model.Results, error) {
			select {
			case <-time.After(delay):
				return results, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
	}
}
