package mount

import (
	"go.uber.org/zap"
)

// Option to configure the mount-based finder
type Option func(*mountFinder)

// WithVolumeLister sets the volume enumeration capability. It defaults to
// the system mount table.
func WithVolumeLister(lister VolumeLister) Option {
	return func(m *mountFinder) {
		if lister != nil {
			m.lister = lister
		}
	}
}

// Logger sets a logger for this finder. It defaults to a no-op logger.
func Logger(l *zap.Logger) Option {
	return func(m *mountFinder) {
		if l != nil {
			m.l = l
		}
	}
}
