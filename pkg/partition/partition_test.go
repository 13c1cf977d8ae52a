package partition

import (
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/dctree/pkg/graph"
)

// gridGraph builds the nodal graph of an nx x ny quad grid.
func gridGraph(nx, ny int) *graph.Graph {
	var conn []int
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			n0 := j*(nx+1) + i
			conn = append(conn, n0, n0+1, n0+nx+2, n0+nx+1)
		}
	}
	return graph.FromMesh(conn, 4, (nx+1)*(ny+1))
}

func TestBisectionBalance(t *testing.T) {
	tests := []struct {
		name   string
		nx, ny int
		nparts int
	}{
		{name: "two parts", nx: 9, ny: 9, nparts: 2},
		{name: "four parts", nx: 9, ny: 9, nparts: 4},
		{name: "odd part count", nx: 12, ny: 7, nparts: 5},
		{name: "more parts than rows", nx: 3, ny: 3, nparts: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridGraph(tt.nx, tt.ny)
			part, cut := Bisection{RefinePasses: 4}.Partition(g, tt.nparts)

			if len(part) != g.NumVertices() {
				t.Fatalf("len(part) = %d, want %d", len(part), g.NumVertices())
			}
			sizes := make([]int, tt.nparts)
			for v, p := range part {
				if p < 0 || p >= tt.nparts {
					t.Fatalf("vertex %d has part %d outside [0,%d)", v, p, tt.nparts)
				}
				sizes[p]++
			}

			ideal := float64(g.NumVertices()) / float64(tt.nparts)
			slack := math.Ceil(math.Log2(float64(tt.nparts))) + 1
			for p, sz := range sizes {
				if math.Abs(float64(sz)-ideal) > slack {
					t.Errorf("part %d has %d vertices, ideal %.1f", p, sz, ideal)
				}
			}

			if cut != EdgeCut(g, part) {
				t.Errorf("reported cut %d, recomputed %d", cut, EdgeCut(g, part))
			}
		})
	}
}

func TestBisectionDeterministic(t *testing.T) {
	g := gridGraph(15, 11)
	first, cut1 := Bisection{RefinePasses: 3}.Partition(g, 6)
	for range 5 {
		again, cut2 := Bisection{RefinePasses: 3}.Partition(g, 6)
		if !slices.Equal(first, again) || cut1 != cut2 {
			t.Fatal("Bisection is not deterministic")
		}
	}
}

func TestBisectionRefineDoesNotHurt(t *testing.T) {
	g := gridGraph(20, 20)
	_, raw := Bisection{}.Partition(g, 2)
	_, refined := Bisection{RefinePasses: 8}.Partition(g, 2)
	if refined > raw {
		t.Errorf("refined cut %d worse than unrefined %d", refined, raw)
	}
}

func TestBisectionDisconnected(t *testing.T) {
	// Two separate quads plus an isolated node.
	conn := []int{
		0, 1, 2, 3,
		4, 5, 6, 7,
	}
	g := graph.FromMesh(conn, 4, 9)
	part, _ := Bisection{RefinePasses: 2}.Partition(g, 2)

	sizes := make([]int, 2)
	for _, p := range part {
		sizes[p]++
	}
	if sizes[0] != 5 || sizes[1] != 4 {
		t.Errorf("sizes = %v, want [5 4]", sizes)
	}
}

func TestBisectionTrivial(t *testing.T) {
	g := gridGraph(2, 2)
	part, cut := Bisection{}.Partition(g, 1)
	if cut != 0 {
		t.Errorf("cut = %d for one part", cut)
	}
	for _, p := range part {
		if p != 0 {
			t.Fatalf("part = %v, want all zero", part)
		}
	}

	empty := &graph.Graph{Index: []int{0}}
	if part, _ := (Bisection{}).Partition(empty, 3); len(part) != 0 {
		t.Errorf("empty graph part = %v", part)
	}
}

func TestLockedSerializes(t *testing.T) {
	var inside, overlaps atomic.Int32
	slow := Func(func(g *graph.Graph, nparts int) ([]int, int) {
		if inside.Add(1) > 1 {
			overlaps.Add(1)
		}
		defer inside.Add(-1)
		// Enough work for goroutines to pile up on the lock.
		part, cut := Bisection{RefinePasses: 2}.Partition(g, nparts)
		return part, cut
	})

	g := gridGraph(10, 10)
	a, b := Locked(slow), Locked(slow)

	var wg sync.WaitGroup
	for i := range 16 {
		p := a
		if i%2 == 1 {
			p = b
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Partition(g, 4)
		}()
	}
	wg.Wait()

	if n := overlaps.Load(); n != 0 {
		t.Errorf("%d overlapping calls through Locked", n)
	}
}

func TestLockedIdempotent(t *testing.T) {
	p := Locked(Bisection{})
	if Locked(p) != p {
		t.Error("Locked(Locked(p)) should return the same wrapper")
	}

	// Double wrapping must not deadlock.
	g := gridGraph(2, 2)
	Locked(p).Partition(g, 2)
}

func TestEdgeCut(t *testing.T) {
	g := gridGraph(1, 1) // one quad: K4 over nodes 0, 1, 2, 3

	tests := []struct {
		name string
		part []int
		want int
	}{
		{"single part", []int{0, 0, 0, 0}, 0},
		{"bottom and top rows", []int{0, 0, 1, 1}, 4},
		{"one corner", []int{1, 0, 0, 0}, 3},
		{"all apart", []int{0, 1, 2, 3}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EdgeCut(g, tt.part); got != tt.want {
				t.Errorf("EdgeCut(%v) = %d, want %d", tt.part, got, tt.want)
			}
		})
	}
}

func TestFuncAdapter(t *testing.T) {
	g := gridGraph(2, 1)
	var p Partitioner = Func(func(g *graph.Graph, nparts int) ([]int, int) {
		part := make([]int, g.NumVertices())
		for v := range part {
			part[v] = v % nparts
		}
		return part, EdgeCut(g, part)
	})

	part, cut := p.Partition(g, 2)
	if len(part) != 6 {
		t.Fatalf("got %d part ids, want 6", len(part))
	}
	if cut != EdgeCut(g, part) {
		t.Errorf("cut = %d, want %d", cut, EdgeCut(g, part))
	}
}
