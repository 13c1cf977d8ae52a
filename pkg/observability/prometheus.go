package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks records build, partitioner and store events as Prometheus
// metrics. It implements both [BuildHooks] and [StoreHooks].
type PrometheusHooks struct {
	builds            *prometheus.CounterVec
	buildDuration     prometheus.Histogram
	buildLeaves       prometheus.Histogram
	partitions        prometheus.Counter
	partitionDuration prometheus.Histogram
	partitionVertices prometheus.Histogram
	edgeCut           prometheus.Histogram
	storeEvents       *prometheus.CounterVec
	storeBytes        prometheus.Counter
}

// NewPrometheusHooks registers the dctree metrics with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		builds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dctree_builds_total",
			Help: "Tree builds by result",
		}, []string{"result"}),
		buildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dctree_build_duration_seconds",
			Help:    "Tree build duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4min
		}),
		buildLeaves: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dctree_build_leaves",
			Help:    "Leaves per built tree",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		partitions: f.NewCounter(prometheus.CounterOpts{
			Name: "dctree_partitioner_calls_total",
			Help: "Partitioner calls, including separator and refinement graphs",
		}),
		partitionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dctree_partitioner_duration_seconds",
			Help:    "Partitioner call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		partitionVertices: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dctree_partitioner_vertices",
			Help:    "Vertices per partitioned graph",
			Buckets: prometheus.ExponentialBuckets(16, 4, 10),
		}),
		edgeCut: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dctree_partitioner_edge_cut",
			Help:    "Edge cut reported by the partitioner",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		storeEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dctree_store_events_total",
			Help: "Tree store lookups and writes by backend and event",
		}, []string{"backend", "event"}),
		storeBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "dctree_store_written_bytes_total",
			Help: "Encoded tree bytes written to stores",
		}),
	}
}

func (h *PrometheusHooks) OnBuildStart(context.Context, int, int) {}

func (h *PrometheusHooks) OnBuildComplete(_ context.Context, _, _, leaves int, d time.Duration, err error) {
	if err != nil {
		h.builds.WithLabelValues("error").Inc()
		return
	}
	h.builds.WithLabelValues("ok").Inc()
	h.buildDuration.Observe(d.Seconds())
	h.buildLeaves.Observe(float64(leaves))
}

func (h *PrometheusHooks) OnPartitionStart(context.Context, int, int) {}

func (h *PrometheusHooks) OnPartitionComplete(_ context.Context, vertices, _, edgeCut int, d time.Duration) {
	h.partitions.Inc()
	h.partitionDuration.Observe(d.Seconds())
	h.partitionVertices.Observe(float64(vertices))
	h.edgeCut.Observe(float64(edgeCut))
}

func (h *PrometheusHooks) OnStoreHit(_ context.Context, backend string) {
	h.storeEvents.WithLabelValues(backend, "hit").Inc()
}

func (h *PrometheusHooks) OnStoreMiss(_ context.Context, backend string) {
	h.storeEvents.WithLabelValues(backend, "miss").Inc()
}

func (h *PrometheusHooks) OnStoreSet(_ context.Context, backend string, size int) {
	h.storeEvents.WithLabelValues(backend, "set").Inc()
	h.storeBytes.Add(float64(size))
}

var (
	_ BuildHooks = (*PrometheusHooks)(nil)
	_ StoreHooks = (*PrometheusHooks)(nil)
)
