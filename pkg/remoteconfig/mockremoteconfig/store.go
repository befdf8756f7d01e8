// Package mockremoteconfig provides a mock for the remoteconfig.Store
// interface, with injectable functions to define each call.
package mockremoteconfig

import (
	"context"

	"github.com/oneconcern/repofind/pkg/model"
	"github.com/oneconcern/repofind/pkg/remoteconfig"
)

var _ remoteconfig.Store = &StoreMock{}

// StoreMock implements remoteconfig.Store with overridable functions.
// Calls with a nil function panic: tests define what they exercise.
type StoreMock struct {
	StringFunc      func() string
	ListRemotesFunc func(ctx context.Context) ([]string, error)
	ListRefsFunc    func(ctx context.Context, name string) (model.RefChecksums, error)
	RemoteFunc      func(ctx context.Context, name string) (model.Remote, error)
	SaveRemoteFunc  func(ctx context.Context, name string, desc remoteconfig.RemoteDescriptor) error
}

func (m *StoreMock) String() string {
	if m.StringFunc == nil {
		return "mockremoteconfig"
	}
	return m.StringFunc()
}

func (m *StoreMock) ListRemotes(ctx context.Context) ([]string, error) {
	return m.ListRemotesFunc(ctx)
}

func (m *StoreMock) ListRefs(ctx context.Context, name string) (model.RefChecksums, error) {
	return m.ListRefsFunc(ctx, name)
}

func (m *StoreMock) Remote(ctx context.Context, name string) (model.Remote, error) {
	return m.RemoteFunc(ctx, name)
}

func (m *StoreMock) SaveRemote(ctx context.Context, name string, desc remoteconfig.RemoteDescriptor) error {
	return m.SaveRemoteFunc(ctx, name, desc)
}
