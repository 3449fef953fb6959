package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequests counts finished requests by chi route pattern.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chainblog_http_requests_total",
		Help: "Total number of HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chainblog_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// TrendingSweeps counts trending score recomputations by trigger (admin, scheduler) and result.
	TrendingSweeps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chainblog_trending_sweeps_total",
		Help: "Total number of trending score sweeps",
	}, []string{"trigger", "result"})

	TrendingSweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chainblog_trending_sweep_duration_seconds",
		Help:    "Duration of trending score sweeps in seconds",
		Buckets: prometheus.DefBuckets,
	})

	TrendingPostsSwept = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chainblog_trending_posts_swept",
		Help: "Number of posts rescored by the last trending sweep",
	})

	// EngagementConflicts counts rejected duplicate likes and follows.
	EngagementConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chainblog_engagement_conflicts_total",
		Help: "Total number of duplicate likes and follows rejected",
	}, []string{"kind"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chainblog_cache_lookups_total",
		Help: "Total cache lookups by result (hit, miss, error)",
	}, []string{"result"})

	ChainPublications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chainblog_chain_publications_total",
		Help: "Total simulated chain publications by chain and result",
	}, []string{"chain", "result"})
)

// ObserveSweep records one trending sweep. It is meant to be deferred with the start time.
func ObserveSweep(trigger string, start time.Time, swept int, err error) {
	TrendingSweepDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		TrendingSweeps.WithLabelValues(trigger, "error").Inc()
		return
	}
	TrendingSweeps.WithLabelValues(trigger, "ok").Inc()
	TrendingPostsSwept.Set(float64(swept))
}

func Handler() http.Handler {
	return promhttp.Handler()
}
