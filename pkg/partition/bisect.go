package partition

import (
	"cmp"
	"slices"

	"github.com/matzehuels/dctree/pkg/graph"
	"github.com/matzehuels/dctree/pkg/perm"
)

// Bisection is a deterministic recursive-bisection partitioner.
//
// Part sizes differ by at most one vertex per bisection level from the ideal
// n/k. RefinePasses bounds the number of boundary-swap passes run after each
// bisection; zero disables refinement.
type Bisection struct {
	RefinePasses int
}

// Partition implements Partitioner.
func (b Bisection) Partition(g *graph.Graph, nparts int) ([]int, int) {
	n := g.NumVertices()
	part := make([]int, n)
	if nparts <= 1 || n == 0 {
		return part, 0
	}

	s := &bisector{
		g:      g,
		part:   part,
		mark:   make([]int, n),
		seen:   make([]int, n),
		side:   make([]int8, n),
		passes: b.RefinePasses,
	}
	s.split(perm.Seq(n), 0, nparts)
	return part, EdgeCut(g, part)
}

// bisector holds the scratch state of one Partition call. The stamp arrays
// avoid clearing per-vertex flags between subsets and traversals.
type bisector struct {
	g      *graph.Graph
	part   []int
	mark   []int // == stamp when the vertex is in the subset being bisected
	stamp  int
	seen   []int // == visit when the vertex was reached by the current traversal
	visit  int
	side   []int8
	queue  []int
	passes int
}

type candidate struct {
	v, gain int
}

// split assigns part ids [first, first+nparts) to verts.
func (s *bisector) split(verts []int, first, nparts int) {
	if nparts == 1 {
		for _, v := range verts {
			s.part[v] = first
		}
		return
	}
	nl := nparts / 2
	target := (len(verts)*nl + nparts/2) / nparts
	left, right := s.bisect(verts, target)
	s.split(left, first, nl)
	s.split(right, first+nl, nparts-nl)
}

// bisect splits verts (ascending) into a left half of exactly target vertices
// and a right half with the rest. Both halves keep ascending order.
func (s *bisector) bisect(verts []int, target int) (left, right []int) {
	s.stamp++
	for _, v := range verts {
		s.mark[v] = s.stamp
	}
	if len(verts) == 0 {
		return nil, nil
	}

	order := s.grow(verts, s.peripheral(verts[0]))
	for i, v := range order {
		if i < target {
			s.side[v] = 0
		} else {
			s.side[v] = 1
		}
	}
	for range s.passes {
		if !s.refine(verts) {
			break
		}
	}

	for _, v := range verts {
		if s.side[v] == 0 {
			left = append(left, v)
		} else {
			right = append(right, v)
		}
	}
	return left, right
}

// peripheral returns a vertex far from start within start's component,
// found by two rounds of breadth-first search.
func (s *bisector) peripheral(start int) int {
	for range 2 {
		s.visit++
		s.seen[start] = s.visit
		s.queue = append(s.queue[:0], start)
		for head := 0; head < len(s.queue); head++ {
			for _, w := range s.g.Neighbors(s.queue[head]) {
				if s.mark[w] == s.stamp && s.seen[w] != s.visit {
					s.seen[w] = s.visit
					s.queue = append(s.queue, w)
				}
			}
		}
		start = s.queue[len(s.queue)-1]
	}
	return start
}

// grow orders the subset breadth-first from start. When a component is
// exhausted, growth restarts from the smallest unvisited vertex.
func (s *bisector) grow(verts []int, start int) []int {
	s.visit++
	order := make([]int, 0, len(verts))
	next := 0
	for len(order) < len(verts) {
		if s.seen[start] == s.visit {
			for s.seen[verts[next]] == s.visit {
				next++
			}
			start = verts[next]
		}
		head := len(order)
		s.seen[start] = s.visit
		order = append(order, start)
		for ; head < len(order); head++ {
			for _, w := range s.g.Neighbors(order[head]) {
				if s.mark[w] == s.stamp && s.seen[w] != s.visit {
					s.seen[w] = s.visit
					order = append(order, w)
				}
			}
		}
	}
	return order
}

// refine runs one pass of pairwise boundary swaps and reports whether any
// vertex moved. A swap keeps both sides' sizes and strictly lowers the cut;
// the neighborhoods of swapped vertices are locked for the rest of the pass so
// the remaining gains stay exact.
func (s *bisector) refine(verts []int) bool {
	var cands [2][]candidate
	for _, v := range verts {
		gain, external := 0, false
		for _, w := range s.g.Neighbors(v) {
			if s.mark[w] != s.stamp {
				continue
			}
			if s.side[w] == s.side[v] {
				gain--
			} else {
				gain++
				external = true
			}
		}
		if external {
			cands[s.side[v]] = append(cands[s.side[v]], candidate{v: v, gain: gain})
		}
	}
	byGain := func(a, b candidate) int {
		if c := cmp.Compare(b.gain, a.gain); c != 0 {
			return c
		}
		return cmp.Compare(a.v, b.v)
	}
	slices.SortFunc(cands[0], byGain)
	slices.SortFunc(cands[1], byGain)

	s.visit++
	moved := false
	i, j := 0, 0
	for i < len(cands[0]) && j < len(cands[1]) {
		a, b := cands[0][i], cands[1][j]
		if s.seen[a.v] == s.visit {
			i++
			continue
		}
		if s.seen[b.v] == s.visit {
			j++
			continue
		}
		gain := a.gain + b.gain
		if slices.Contains(s.g.Neighbors(a.v), b.v) {
			gain -= 2
		}
		if gain <= 0 {
			break
		}
		s.side[a.v], s.side[b.v] = 1, 0
		s.lock(a.v)
		s.lock(b.v)
		moved = true
		i++
		j++
	}
	return moved
}

func (s *bisector) lock(v int) {
	s.seen[v] = s.visit
	for _, w := range s.g.Neighbors(v) {
		s.seen[w] = s.visit
	}
}
