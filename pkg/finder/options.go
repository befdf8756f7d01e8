package finder

import (
	"go.uber.org/zap"
)

// Option sets options for resolve operations
type Option func(*Settings)

// Settings defines various settings for resolve operations
type Settings struct {
	l           *zap.Logger
	withMetrics bool
	m           *M
}

// Logger sets a logger for resolve operations. It defaults to a no-op logger.
func Logger(l *zap.Logger) Option {
	return func(s *Settings) {
		if l != nil {
			s.l = l
		}
	}
}

// WithMetrics toggles metrics collection on resolve operations
func WithMetrics(enabled bool) Option {
	return func(s *Settings) {
		s.withMetrics = enabled
	}
}

func defaultSettings(opts ...Option) Settings {
	s := Settings{
		l: zap.NewNop(),
	}
	for _, apply := range opts {
		apply(&s)
	}
	if s.withMetrics {
		s.m = ensureMetrics()
	}
	return s
}
