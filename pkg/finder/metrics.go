package finder

import (
	"github.com/oneconcern/repofind/pkg/metrics"
)

// M describes metrics for the finder package
type M struct {
	Usage   *metrics.UsageMetrics
	Resolve *metrics.ResolveMetrics
}

func ensureMetrics() *M {
	return metrics.EnsureMetrics("finder", func() interface{} {
		return &M{
			Usage:   metrics.NewUsageMetrics("finder"),
			Resolve: metrics.NewResolveMetrics("finder"),
		}
	}).(*M)
}
