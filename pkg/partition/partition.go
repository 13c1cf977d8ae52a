package partition

import (
	"sync"

	"github.com/matzehuels/dctree/pkg/graph"
)

// Partitioner computes a k-way partition of a graph's vertices.
//
// Partition returns one part id in [0, nparts) per vertex and the number of
// edges whose endpoints landed in different parts. nparts is at least 1.
type Partitioner interface {
	Partition(g *graph.Graph, nparts int) (part []int, edgeCut int)
}

// Func adapts a plain function to the Partitioner interface.
type Func func(g *graph.Graph, nparts int) ([]int, int)

// Partition calls f(g, nparts).
func (f Func) Partition(g *graph.Graph, nparts int) ([]int, int) { return f(g, nparts) }

// mu serializes every call made through a Locked partitioner.
var mu sync.Mutex

type locked struct {
	inner Partitioner
}

// Locked wraps p so that all calls through it, from any goroutine and through
// any Locked wrapper, hold one process-wide lock. Wrapping an already locked
// partitioner returns it unchanged.
func Locked(p Partitioner) Partitioner {
	if l, ok := p.(*locked); ok {
		return l
	}
	return &locked{inner: p}
}

// Partition forwards to the wrapped partitioner under the global lock.
func (l *locked) Partition(g *graph.Graph, nparts int) ([]int, int) {
	mu.Lock()
	defer mu.Unlock()
	return l.inner.Partition(g, nparts)
}

// EdgeCut counts the edges of g whose endpoints have different part ids.
func EdgeCut(g *graph.Graph, part []int) int {
	cut := 0
	for v := 0; v < g.NumVertices(); v++ {
		for _, w := range g.Neighbors(v) {
			if w > v && part[w] != part[v] {
				cut++
			}
		}
	}
	return cut
}
