package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	IngestRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "simtrack_ingest_requests_total",
		Help: "Total ingestion requests received",
	})
	EventsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "simtrack_events_stored_total",
		Help: "Total tracking events durably stored",
	})
	DecodeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "simtrack_decode_errors_total",
		Help: "Raw commands rejected by the payload decoder",
	})
	GeoErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "simtrack_geo_errors_total",
		Help: "Readings rejected by the geo normalizer",
	})
	StoreErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "simtrack_store_errors_total",
		Help: "Failed writes to the event store",
	})
	QueryErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "simtrack_query_errors_total",
		Help: "Failed history queries against the event store",
	})
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "simtrack_latest_cache_hits_total",
		Help: "Latest-position lookups served from redis",
	})
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "simtrack_latest_cache_misses_total",
		Help: "Latest-position lookups that fell back to the store",
	})
	IngestLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "simtrack_ingest_latency_seconds",
		Help:    "Latency of decode+assemble+store per request",
		Buckets: prometheus.DefBuckets,
	})
)

func ObserveIngestLatency(start time.Time) {
	IngestLatency.Observe(time.Since(start).Seconds())
}

func StartMetricsServer(port string) {
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("ok"))
	})
	_ = http.ListenAndServe(":"+port, nil)
}
