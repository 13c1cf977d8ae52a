package dctree

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dctree/pkg/partition"
	"github.com/matzehuels/dctree/pkg/perm"
)

// builder holds the state shared by every branch of one construction run.
//
// conn and elemOrig are reordered in place, but each branch only touches the
// rows of its own element interval, so branches never write the same index.
type builder struct {
	ctx     context.Context
	maxElem int
	dim     int

	conn     []int // 0-based connectivity, rows in tree order
	elemOrig []int // elemOrig[p] is the original element now at row p

	part   partition.Partitioner
	fork   *forker
	logger *log.Logger
	calls  atomic.Int64
}

// interval is an inclusive index range. It is empty when last == first-1.
type interval struct {
	first, last int
}

func (r interval) len() int { return r.last - r.first + 1 }

// scope is the partition assignment a subtree is built against.
//
// The global scope classifies elements by the part of their mesh nodes. A
// separator scope classifies them by a partition of their own local nodal
// graph; its node ids come from local, whose row 0 is element row base.
type scope struct {
	local []int
	base  int
	part  []int

	// sizes counts nodes per part. Only the global scope has it: there node
	// ranges shrink with the part interval. In separator scopes every node
	// keeps the node range of the subtree the scope was created for.
	sizes []int

	sep bool

	// origin is the element count the partition was computed for. A leaf
	// is only refined when it is strictly smaller, which bounds recursion.
	origin int
}

func (sc *scope) node(conn []int, dim, e, j int) int {
	if sc.local != nil {
		return sc.local[(e-sc.base)*dim+j]
	}
	return conn[e*dim+j]
}

// Element classes, in the order they are laid out inside a range.
const (
	classLeft = iota
	classRight
	classSep
	numClasses
)

// build constructs the subtree covering elems and nodes, whose elements only
// touch nodes with part ids in parts.
func (b *builder) build(sc *scope, parts, elems, nodes interval) *Node {
	n := elems.len()
	if parts.first == parts.last || n <= b.maxElem {
		return b.leaf(sc, elems, nodes)
	}
	if sc.sizes != nil {
		if got := b.partNodes(sc, parts.first, parts.last); got != nodes.len() {
			panicf("parts [%d,%d] hold %d nodes, range [%d,%d] has %d",
				parts.first, parts.last, got, nodes.first, nodes.last, nodes.len())
		}
	}

	mid := parts.first + (parts.last-parts.first)/2
	class := make([]int, n)
	var counts [numClasses]int
	for i := range class {
		c := b.classify(sc, elems.first+i, parts, mid)
		class[i] = c
		counts[c]++
	}
	if counts[classSep] == n {
		// No element lies on one side only: the split makes no progress.
		return b.leaf(sc, elems, nodes)
	}
	b.reorder(sc, elems, class)

	leftElems := interval{elems.first, elems.first + counts[classLeft] - 1}
	rightElems := interval{leftElems.last + 1, leftElems.last + counts[classRight]}
	sepElems := interval{rightElems.last + 1, elems.last}

	leftNodes, rightNodes := nodes, nodes
	if sc.sizes != nil {
		cnt := b.partNodes(sc, parts.first, mid)
		leftNodes = interval{nodes.first, nodes.first + cnt - 1}
		rightNodes = interval{leftNodes.last + 1, nodes.last}
	}

	node := &Node{
		FirstElem: elems.first,
		LastElem:  elems.last,
		FirstNode: nodes.first,
		LastNode:  nodes.last,
		Sep:       sc.sep,
	}
	_ = b.fork.both(
		func() error {
			node.Left = b.build(sc, interval{parts.first, mid}, leftElems, leftNodes)
			return nil
		},
		func() error {
			node.Right = b.build(sc, interval{mid + 1, parts.last}, rightElems, rightNodes)
			return nil
		},
	)
	if sepElems.len() > 0 {
		node.Separator = b.subdivide(sepElems, nodes, true)
	}
	return node
}

// leaf ends the recursion for elems. An oversized range is handed to the
// separator partitioner when that can still shrink it.
func (b *builder) leaf(sc *scope, elems, nodes interval) *Node {
	n := elems.len()
	if n > b.maxElem && n < sc.origin {
		return b.subdivide(elems, nodes, sc.sep)
	}
	if n > b.maxElem {
		b.logger.Debug("oversized leaf", "elements", n, "max", b.maxElem, "separator", sc.sep)
	}
	return newLeaf(elems, nodes, sc.sep)
}

func newLeaf(elems, nodes interval, sep bool) *Node {
	return &Node{
		FirstElem: elems.first,
		LastElem:  elems.last,
		FirstNode: nodes.first,
		LastNode:  nodes.last,
		Sep:       sep,
	}
}

// classify returns the class of element e for a split of parts after mid.
func (b *builder) classify(sc *scope, e int, parts interval, mid int) int {
	var lo, hi bool
	for j := range b.dim {
		p := sc.part[sc.node(b.conn, b.dim, e, j)]
		if p < parts.first || p > parts.last {
			panicf("element row %d touches part %d outside [%d,%d]", e, p, parts.first, parts.last)
		}
		if p <= mid {
			lo = true
		} else {
			hi = true
		}
	}
	switch {
	case lo && hi:
		return classSep
	case hi:
		return classRight
	default:
		return classLeft
	}
}

// reorder groups the rows of elems by class, keeping their relative order.
func (b *builder) reorder(sc *scope, elems interval, class []int) {
	order := perm.FromPartition(class, numClasses)
	first, end := elems.first, elems.last+1

	perm.Permute2D(b.conn[first*b.dim:end*b.dim], order, b.dim)
	perm.Permute1D(b.elemOrig[first:end], order)
	if sc.local != nil {
		perm.Permute2D(sc.local[(first-sc.base)*b.dim:(end-sc.base)*b.dim], order, b.dim)
	}
}

func (b *builder) partNodes(sc *scope, first, last int) int {
	count := 0
	for p := first; p <= last; p++ {
		count += sc.sizes[p]
	}
	return count
}

func panicf(format string, args ...any) {
	panic(fmt.Sprintf("dctree: "+format, args...))
}
