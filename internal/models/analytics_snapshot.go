package models

import "time"

// PageCount is one entry of the per-day top-page ranking. The path is
// always the anonymized form; raw identifiers never reach this struct.
type PageCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

// BrowserCount is one entry of the per-day browser-family breakdown.
// Only the parsed family name is kept, never the raw User-Agent string.
type BrowserCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// AnalyticsSnapshot is an immutable point-in-time projection of the
// aggregator state. It is produced on demand, serialized as-is on the
// summary and stream endpoints, and never mutated after construction.
//
// Example JSON:
//
//	{
//	  "activeNow": 12,
//	  "requestsPerMinute": 87,
//	  "pageViewsToday": 4210,
//	  "apiRequestsToday": 1302,
//	  "topPages": [{"path": "/", "count": 1500}, {"path": "/product/:id", "count": 930}],
//	  "topBrowsers": [{"name": "Chrome", "count": 2600}],
//	  "hourlyBuckets": [{"hour": "2025-12-28T18", "label": "18:00", "pageViews": 320, "apiRequests": 95}, ...],
//	  "uptimeSince": "2025-12-27T09:14:02Z",
//	  "totalRequests": 98311
//	}
//
// HourlyBuckets always contains exactly 24 contiguous entries ending at the
// current hour, oldest first, with zero-valued buckets synthesized for hours
// that saw no traffic.
type AnalyticsSnapshot struct {
	ActiveNow         int            `json:"activeNow"`
	RequestsPerMinute int64          `json:"requestsPerMinute"`
	PageViewsToday    int64          `json:"pageViewsToday"`
	APIRequestsToday  int64          `json:"apiRequestsToday"`
	TopPages          []PageCount    `json:"topPages"`
	TopBrowsers       []BrowserCount `json:"topBrowsers"`
	HourlyBuckets     []HourlyBucket `json:"hourlyBuckets"`
	UptimeSince       time.Time      `json:"uptimeSince"`
	TotalRequests     int64          `json:"totalRequests"`
}
