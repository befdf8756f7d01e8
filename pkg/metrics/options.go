package metrics

import (
	"context"
	"time"

	"go.opencensus.io/stats/view"
)

// Option configures the global metrics settings
type Option func(*settings)

// WithExporter sets the opencensus exporter to report collected metrics to
func WithExporter(e view.Exporter) Option {
	return func(s *settings) {
		s.exporter = e
	}
}

// WithBasePath prefixes all measure names with a common path
func WithBasePath(basePath string) Option {
	return func(s *settings) {
		s.basePath = basePath
	}
}

// WithTags adds some tags to every reported measurement
func WithTags(tags map[string]string) Option {
	return func(s *settings) {
		if len(s.tags) == 0 {
			s.tags = tags
			return
		}
		for k, v := range tags {
			s.tags[k] = v
		}
	}
}

// WithContexter sets the context factory used when recording measurements
func WithContexter(contexter func() context.Context) Option {
	return func(s *settings) {
		if contexter != nil {
			s.contexter = contexter
		}
	}
}

// WithReportingPeriod sets the period at which collected metrics are reported
func WithReportingPeriod(d time.Duration) Option {
	return func(s *settings) {
		s.d = d
	}
}
