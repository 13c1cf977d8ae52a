package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusHooks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	h := NewPrometheusHooks(reg)

	h.OnBuildStart(ctx, 1000, 1331)
	h.OnPartitionStart(ctx, 1331, 5)
	h.OnPartitionComplete(ctx, 1331, 5, 240, time.Millisecond)
	h.OnPartitionComplete(ctx, 80, 2, 9, time.Microsecond)
	h.OnBuildComplete(ctx, 1000, 1331, 9, time.Second, nil)
	h.OnBuildComplete(ctx, 10, 0, 0, 0, errors.New("bad mesh"))

	h.OnStoreMiss(ctx, "file")
	h.OnStoreSet(ctx, "file", 1024)
	h.OnStoreHit(ctx, "file")
	h.OnStoreHit(ctx, "file")

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"partitioner calls", h.partitions, 2},
		{"ok builds", h.builds.WithLabelValues("ok"), 1},
		{"failed builds", h.builds.WithLabelValues("error"), 1},
		{"store hits", h.storeEvents.WithLabelValues("file", "hit"), 2},
		{"store misses", h.storeEvents.WithLabelValues("file", "miss"), 1},
		{"store bytes", h.storeBytes, 1024},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(tt.c); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}

	if n, err := testutil.GatherAndCount(reg, "dctree_partitioner_edge_cut"); err != nil || n != 1 {
		t.Errorf("GatherAndCount(edge cut) = %d, %v; want 1 series", n, err)
	}
}

func TestPrometheusHooksRegisterOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusHooks(reg)

	defer func() {
		if recover() == nil {
			t.Error("registering the metrics twice on one registry should panic")
		}
	}()
	NewPrometheusHooks(reg)
}
