package config

import (
	"go.uber.org/zap"
)

// Option to configure the config-based finder
type Option func(*configFinder)

// Logger sets a logger for this finder. It defaults to a no-op logger.
func Logger(l *zap.Logger) Option {
	return func(c *configFinder) {
		if l != nil {
			c.l = l
		}
	}
}
