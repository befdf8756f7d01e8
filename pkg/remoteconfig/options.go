package remoteconfig

import (
	"github.com/spf13/afero"
)

// Option to configure a remote configuration store
type Option func(*localConfig)

// WithFS sets the file system hosting remote descriptors. It defaults to
// the OS file system.
func WithFS(fs afero.Fs) Option {
	return func(l *localConfig) {
		if fs != nil {
			l.fs = fs
		}
	}
}

// WithDir sets the directory holding remote descriptors
func WithDir(dir string) Option {
	return func(l *localConfig) {
		if dir != "" {
			l.dir = dir
		}
	}
}

// WithFsyncDisabled skips fsync when writing remote descriptors
func WithFsyncDisabled(disabled bool) Option {
	return func(l *localConfig) {
		l.disableFsync = disabled
	}
}

// WithOverwrite allows SaveRemote to replace an existing remote. By
// default saving an already configured remote fails with status.ErrExists.
func WithOverwrite(enabled bool) Option {
	return func(l *localConfig) {
		l.overwrite = enabled
	}
}

// WithGPGVerifyDefault sets the default signature verification policy
// inherited by remotes that do not set their own
func WithGPGVerifyDefault(verify bool) Option {
	return func(l *localConfig) {
		l.defaults.GPGVerify = boolPtr(verify)
		l.defaults.GPGVerifySummary = boolPtr(verify)
	}
}
