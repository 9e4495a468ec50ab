package analytics

import (
	"sort"
	"strings"
	"sync"
	"time"

	"storefront-analytics/internal/models"

	"github.com/mileusna/useragent"
)

const (
	DefaultActivityWindow  = 5 * time.Minute
	DefaultActivityCap     = 300
	DefaultTopPagesLimit   = 10
	DefaultBucketRetention = 25 * time.Hour

	reportedHours = 24
)

// Options tunes the in-memory windows of an aggregator. Zero fields fall
// back to the defaults above.
type Options struct {
	ActivityWindow  time.Duration // how long a request keeps a caller "active"
	ActivityCap     int           // hard slot cap on the activity window
	TopPagesLimit   int           // entries kept in the top-page and top-browser rankings
	BucketRetention time.Duration // must exceed the reported 24h series by at least one hour
}

func (o Options) withDefaults() Options {
	if o.ActivityWindow <= 0 {
		o.ActivityWindow = DefaultActivityWindow
	}
	if o.ActivityCap <= 0 {
		o.ActivityCap = DefaultActivityCap
	}
	if o.TopPagesLimit <= 0 {
		o.TopPagesLimit = DefaultTopPagesLimit
	}
	if o.BucketRetention <= 0 {
		o.BucketRetention = DefaultBucketRetention
	}
	return o
}

//go:generate mockgen -source=aggregator.go -destination=./mocks/tracker_mock.go -package=mocks
type Tracker interface {
	// Record counts one inbound request. public marks classified page
	// views; everything else is counted as an API request. Record never
	// fails and never blocks on anything but the aggregator's own lock.
	Record(rawPath, userAgent string, public bool)

	// Snapshot builds an immutable projection of the current state. The
	// hourly series always has exactly 24 contiguous entries ending at
	// the current hour.
	Snapshot() *models.AnalyticsSnapshot
}

// aggregator owns every counter and time window of the subsystem. All
// state is process-local and volatile; a restart resets it. One coarse
// mutex covers each Record and Snapshot call so that related fields
// (day key, bucket map, rankings) are always seen together.
type aggregator struct {
	mu  sync.Mutex
	now func() time.Time

	opts Options

	startedAt     time.Time
	totalRequests int64

	// Tumbling 60-second window: requestsPerMinute holds the completed
	// previous window, minuteRequests accumulates the one in progress.
	minuteWindowStart time.Time
	minuteRequests    int64
	requestsPerMinute int64

	// Bounded ordered list of request timestamps, newest last.
	activity []time.Time

	hourlyBuckets map[string]*models.HourlyBucket

	// Per-day rankings, cleared on day rollover. The order slices keep
	// first-seen order so equal counts rank stably.
	pageCounts    map[string]int64
	pageOrder     []string
	browserCounts map[string]int64
	browserOrder  []string
	currentDayKey string
}

// NewAggregator constructs an aggregator. The host application builds
// one instance at startup and passes it to the recording middleware and
// the summary/stream handlers; independent instances stay fully
// isolated, which keeps tests parallel-safe.
func NewAggregator(opts Options) Tracker {
	return newAggregatorWithClock(opts, time.Now)
}

func newAggregatorWithClock(opts Options, now func() time.Time) *aggregator {
	startedAt := now().UTC()
	return &aggregator{
		now:               now,
		opts:              opts.withDefaults(),
		startedAt:         startedAt,
		minuteWindowStart: startedAt,
		hourlyBuckets:     make(map[string]*models.HourlyBucket),
		pageCounts:        make(map[string]int64),
		browserCounts:     make(map[string]int64),
		currentDayKey:     models.DayKey(startedAt),
	}
}

func (a *aggregator) Record(rawPath, userAgent string, public bool) {
	// Recording piggy-backs on live storefront requests and must never
	// break one; anything unexpected is swallowed and counted.
	defer func() {
		if r := recover(); r != nil {
			metricRecordPanicsTotal.Inc()
		}
	}()

	now := a.now().UTC()

	a.mu.Lock()
	defer a.mu.Unlock()

	a.rollDayIfNeeded(now)
	a.totalRequests++
	a.rollMinuteWindow(now)
	a.recordActivity(now)

	bucket := a.hourlyBuckets[models.HourKey(now)]
	if bucket == nil {
		bucket = models.NewHourlyBucket(now)
		a.hourlyBuckets[bucket.HourKey] = bucket
	}

	if public {
		bucket.PageViews++
		a.countPage(AnonymizePath(rawPath))
		a.countBrowser(userAgent)
		metricRequestsRecordedTotal.WithLabelValues(kindPage).Inc()
	} else {
		bucket.APIRequests++
		metricRequestsRecordedTotal.WithLabelValues(kindAPI).Inc()
	}
}

func (a *aggregator) rollDayIfNeeded(now time.Time) {
	dayKey := models.DayKey(now)
	if dayKey == a.currentDayKey {
		return
	}
	// The per-day rankings reset at UTC midnight. Hourly buckets are
	// untouched here; they age out via the retention purge on the
	// snapshot path.
	a.pageCounts = make(map[string]int64)
	a.pageOrder = a.pageOrder[:0]
	a.browserCounts = make(map[string]int64)
	a.browserOrder = a.browserOrder[:0]
	a.currentDayKey = dayKey
	metricDayRolloversTotal.Inc()
}

func (a *aggregator) rollMinuteWindow(now time.Time) {
	if now.Sub(a.minuteWindowStart) > time.Minute {
		a.requestsPerMinute = a.minuteRequests
		a.minuteRequests = 0
		a.minuteWindowStart = now
	}
	a.minuteRequests++
}

func (a *aggregator) recordActivity(now time.Time) {
	a.activity = append(a.activity, now)
	// Cap first so memory stays bounded even if age pruning lags.
	if over := len(a.activity) - a.opts.ActivityCap; over > 0 {
		a.activity = a.activity[:copy(a.activity, a.activity[over:])]
	}
	a.pruneActivity(now)
}

func (a *aggregator) pruneActivity(now time.Time) {
	cutoff := now.Add(-a.opts.ActivityWindow)
	stale := 0
	for stale < len(a.activity) && a.activity[stale].Before(cutoff) {
		stale++
	}
	if stale > 0 {
		a.activity = a.activity[:copy(a.activity, a.activity[stale:])]
	}
}

func (a *aggregator) countPage(path string) {
	if _, seen := a.pageCounts[path]; !seen {
		a.pageOrder = append(a.pageOrder, path)
	}
	a.pageCounts[path]++
}

func (a *aggregator) countBrowser(rawUserAgent string) {
	name := browserFamily(rawUserAgent)
	if name == "" {
		return
	}
	if _, seen := a.browserCounts[name]; !seen {
		a.browserOrder = append(a.browserOrder, name)
	}
	a.browserCounts[name]++
}

// browserFamily reduces a raw User-Agent to its parsed family name; the
// raw string itself is never stored.
func browserFamily(rawUserAgent string) string {
	if rawUserAgent == "" {
		return ""
	}
	parsed := useragent.Parse(rawUserAgent)
	if parsed.Name != "" {
		return parsed.Name
	}
	return "Other"
}

func (a *aggregator) Snapshot() *models.AnalyticsSnapshot {
	now := a.now().UTC()
	currentHour := now.Truncate(time.Hour)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.pruneActivity(now)
	a.purgeExpiredBuckets(currentHour)

	snapshot := &models.AnalyticsSnapshot{
		ActiveNow:         len(a.activity),
		RequestsPerMinute: a.requestsPerMinute,
		TopPages:          a.topPages(),
		TopBrowsers:       a.topBrowsers(),
		HourlyBuckets:     a.hourlySeries(currentHour),
		UptimeSince:       a.startedAt,
		TotalRequests:     a.totalRequests,
	}

	// "Today" is the same UTC day boundary the rankings reset on, so the
	// totals and the page ranking can never disagree about the day.
	dayKey := models.DayKey(now)
	for _, bucket := range snapshot.HourlyBuckets {
		if strings.HasPrefix(bucket.HourKey, dayKey) {
			snapshot.PageViewsToday += bucket.PageViews
			snapshot.APIRequestsToday += bucket.APIRequests
		}
	}

	metricSnapshotsBuiltTotal.Inc()
	return snapshot
}

// hourlySeries returns the last 24 hours oldest first, synthesizing
// zero-valued buckets so the series never has gaps.
func (a *aggregator) hourlySeries(currentHour time.Time) []models.HourlyBucket {
	series := make([]models.HourlyBucket, 0, reportedHours)
	for i := reportedHours - 1; i >= 0; i-- {
		hour := currentHour.Add(-time.Duration(i) * time.Hour)
		if bucket, ok := a.hourlyBuckets[models.HourKey(hour)]; ok {
			series = append(series, *bucket)
		} else {
			series = append(series, *models.NewHourlyBucket(hour))
		}
	}
	return series
}

// purgeExpiredBuckets drops buckets past the retention window. Retention
// exceeds the reported series by an hour so a bucket is never removed
// while a straggling snapshot still reads it.
func (a *aggregator) purgeExpiredBuckets(currentHour time.Time) {
	cutoffKey := models.HourKey(currentHour.Add(-a.opts.BucketRetention))
	for key := range a.hourlyBuckets {
		if key < cutoffKey {
			delete(a.hourlyBuckets, key)
		}
	}
}

// topPages orders the per-day page counters descending by count, keeping
// first-seen order on ties, truncated to the configured limit. The stable
// sort over the insertion-ordered slice is what makes ties deterministic.
func (a *aggregator) topPages() []models.PageCount {
	pages := make([]models.PageCount, 0, len(a.pageOrder))
	for _, path := range a.pageOrder {
		pages = append(pages, models.PageCount{Path: path, Count: a.pageCounts[path]})
	}
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Count > pages[j].Count
	})
	if len(pages) > a.opts.TopPagesLimit {
		pages = pages[:a.opts.TopPagesLimit]
	}
	return pages
}

func (a *aggregator) topBrowsers() []models.BrowserCount {
	browsers := make([]models.BrowserCount, 0, len(a.browserOrder))
	for _, name := range a.browserOrder {
		browsers = append(browsers, models.BrowserCount{Name: name, Count: a.browserCounts[name]})
	}
	sort.SliceStable(browsers, func(i, j int) bool {
		return browsers[i].Count > browsers[j].Count
	})
	if len(browsers) > a.opts.TopPagesLimit {
		browsers = browsers[:a.opts.TopPagesLimit]
	}
	return browsers
}
