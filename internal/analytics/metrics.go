package analytics

import (
	"storefront-analytics/internal/shared/metrics"
)

const (
	kindPage = "page"
	kindAPI  = "api"
)

var (
	metricRequestsRecordedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubTraffic,
			Name:      "requests_recorded_total",
		},
		[]string{"kind"},
	)

	metricDayRolloversTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubTraffic,
			Name:      "day_rollovers_total",
		},
	)

	metricSnapshotsBuiltTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubTraffic,
			Name:      "snapshots_built_total",
		},
	)

	// metricRecordPanicsTotal counts recoveries inside Record. Recording
	// rides on live storefront requests, so failures are absorbed here
	// instead of surfacing; a non-zero value means a bug worth chasing.
	metricRecordPanicsTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubTraffic,
			Name:      "record_panics_total",
		},
	)
)
