package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	SearchRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shoplens_search_requests_total",
		Help: "Total number of search requests received",
	})

	SearchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "shoplens_search_latency_seconds",
		Help:    "End to end search latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	SourceFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shoplens_source_failures_total",
		Help: "Retrieval failures by candidate source",
	}, []string{"source"})

	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shoplens_cache_hits_total",
		Help: "Cache hits by namespace",
	}, []string{"namespace"})

	CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shoplens_cache_misses_total",
		Help: "Cache misses by namespace",
	}, []string{"namespace"})

	DedupRemoved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shoplens_dedup_removed_total",
		Help: "Candidates removed as duplicates",
	})

	RerankFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shoplens_rerank_fallbacks_total",
		Help: "Times the reranker failed and base ordering was kept",
	})
)

func Init() {
	prometheus.MustRegister(
		SearchRequests,
		SearchLatency,
		SourceFailures,
		CacheHits,
		CacheMisses,
		DedupRemoved,
		RerankFallbacks,
	)
}
